package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconCheck    = "" // check
	IconX        = "" // x
	IconWarning  = "" // warning
	IconInfo     = "" // info
	IconArrow    = "" // arrow right
	IconConfig   = "" // config
	IconDatabase = "" // database
	IconFolder   = "" // folder
	IconHand     = "" // grab
	IconBullseye = "" // drop target
	IconLink     = "" // link
	IconClock    = "" // clock
)
