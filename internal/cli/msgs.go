package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Render Minecraft chat markup, recipes, item icons and player heads"
	MsgTextShort       = "Compile chat markup"
	MsgRecipeShort     = "Parse a crafting recipe and optionally render its grid"
	MsgInventoryShort  = "Parse an inventory string and optionally render it"
	MsgColorShort      = "Resolve overlay colors"
	MsgItemShort       = "Render an item icon"
	MsgHeadShort       = "Render an isometric player head"
	MsgServeShort      = "Serve the generators over HTTP"
	MsgSyntaxShort     = "Show the chat markup reference"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate the man page"

	// Status messages
	MsgFileWritten     = "Wrote %s"
	MsgNoOverlay       = "Overlay %s does not apply without a color"
	MsgVersionFormat   = "mcgen version %s\n  commit: %s\n  built:  %s\n"
	MsgRecipeTitle     = "Recipe"
	MsgInventoryTitle  = "Inventory"
	MsgOverlaysTitle   = "Overlays"
	MsgColorTitle      = "Overlay %s (%s)"
	MsgServerListening = "Listening on %s"

	// Error messages
	MsgErrNoInput      = "no input given"
	MsgErrTextFormat   = "unknown text format %q (want ansi, json, legacy, plain, png or svg)"
	MsgErrPrefix       = "legacy prefix must be a single character, got %q"
	MsgErrNoAtlas      = "rendering %s needs a texture atlas (set textures.atlas and textures.index)"
	MsgErrNoCommand    = "no command specified"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig    = "Config file (default $XDG_CONFIG_HOME/mcgen/config.toml)"
	MsgFlagFormat    = "Output format for tables: auto, term, text or json"
	MsgFlagOutputDir = "Directory for written images (overrides output.dir)"
	MsgFlagForce     = "Overwrite existing output files"
	MsgFlagOut       = "Write the rendered image to this file"
	MsgFlagAs        = "Text output: ansi, json, legacy, plain, png or svg (default ansi on a terminal, json otherwise)"
	MsgFlagWidth     = "Wrap text at this many characters"
	MsgFlagPrefix    = "Formatting character for legacy output"
	MsgFlagColumns   = "Grid columns (default render.inventory_columns)"
	MsgFlagRows      = "Grid rows"
	MsgFlagTitle     = "Inventory title"
	MsgFlagList      = "List the available overlays"
	MsgFlagAmount    = "Stack amount, repeatable; one cell per amount"
	MsgFlagSlot      = "Slot number, repeatable; pairs with --amount"
	MsgFlagDurab     = "Durability percentage (0-100)"
	MsgFlagExtra     = "Extra content shown as a badge"
	MsgFlagColor     = "Overlay color: hex, #overlay#base or a named choice"
	MsgFlagEnchanted = "Add the enchantment glint"
	MsgFlagTexture   = "PNG texture to use instead of the atlas; a vertical strip animates"
	MsgFlagDelay     = "Frame delay in milliseconds for animated textures"
	MsgFlagScale     = "Scale the head up (>0) or down (<0)"
	MsgFlagAddr      = "Listen address (default server.addr)"

	// Tooltip flags of "text --as png"
	MsgFlagCentered     = "Center tooltip lines"
	MsgFlagFirstLineGap = "Set the first tooltip line apart from the rest"
	MsgFlagNoBorder     = "Draw the tooltip without its frame"
	MsgFlagPadding      = "Transparent margin around the tooltip in font pixels"
	MsgFlagAlpha        = "Tooltip background opacity, 1-255"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/text-long.txt
	msgTextLongRaw string
	MsgTextLong    = strings.TrimSpace(msgTextLongRaw)

	//go:embed msgs/text-example.txt
	msgTextExampleRaw string
	MsgTextExample    = strings.TrimSpace(msgTextExampleRaw)

	//go:embed msgs/recipe-long.txt
	msgRecipeLongRaw string
	MsgRecipeLong    = strings.TrimSpace(msgRecipeLongRaw)

	//go:embed msgs/inventory-long.txt
	msgInventoryLongRaw string
	MsgInventoryLong    = strings.TrimSpace(msgInventoryLongRaw)

	//go:embed msgs/head-long.txt
	msgHeadLongRaw string
	MsgHeadLong    = strings.TrimSpace(msgHeadLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/syntax.md
	MsgSyntax string
)
