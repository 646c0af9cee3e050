// Package highlight renders fenced code blocks to HTML with chroma.
//
// Two dialect features of the manual are handled here:
//   - line annotations: "[tl! add]" and "[tl! remove]" (optionally after "//"),
//     and the ":start"/":end" range forms, mark lines as added or removed;
//   - language aliases: blade, env, shell and php-line map to chroma lexers.
//
// Annotation range state lives in a single Format call, so one unterminated
// range never leaks into the next block.
package highlight
