// Package markup compiles annotated chat strings into styled runs.
//
// Recognised tokens:
//
//	&a §l                  legacy color (0-9, a-f), style (k-o) and reset (r) codes
//	%%GOLD%% %%#ff8800%%    named or literal color, clears style flags
//	%%BOLD%% %%RESET%%      style flag, full reset
//	%%STAR%% %%STAR:3%%     inline icon, optionally repeated
//	%%click:run_command:/spawn%% ... %%/click%%
//	%%hover:show_text:Hi%% ... %%/hover%%
//
// Unknown %%NAME%% tokens are kept as literal text. Click and hover scopes
// still open at the end of the input are closed implicitly. Only a
// malformed click or hover token is an error.
//
// Compiled runs can be converted to chat components, legacy section-sign
// strings, ANSI terminal previews and SVG.
package markup
