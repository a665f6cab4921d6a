// Package dryc provides the shared value model for compiling DRY narrative
// sources:
//
// - Spanned values that remember the 1-based source line they came from
// - A stable error model via Error (code, message, optional line)
//
// Design policy:
// - Keep only the shared model in the root package; the grammar parser lives
//   under dry/, value validators under validate/, the schema engine under
//   schema/, document schemas under document/ and the linker under link/.
// - Project assembly (file discovery, configuration, output) lives under
//   project/ and the CLI under cmd/dryc.
// - Core packages are pure functions with no process-wide state.
//
// Typical usage:
//
//	raw, err := dry.ParseDocument("root.scene.dry", text)
//	scene, err := document.ValidateScene(raw)
//	game, err := link.Compile(info, []*document.Scene{scene})
package dryc
