package asset

// ExampleConfig is a commented configuration listing every key at its default
const ExampleConfig = `# clockdate configuration
# Searched at $HOME/.config/clockdate/config.toml, then ./config.toml

[colors]
# "#RRGGBB" or one of: Black Red Green Yellow Blue Magenta Purple Cyan Gray
# DarkGray LightRed LightGreen LightYellow LightBlue LightMagenta LightCyan White
time = "Blue"
date = "DarkGray"

[window]
margin_top = 10
margin_right = 10
width = 400
height = 180
monitor = "DP-1"
# Added to the time block height; negative overlaps the font's blank rows
date_offset = -65

[fonts]
time_size = 12
date_size = 10

[chime]
enabled = false
frequency = 880
duration_ms = 120
volume = 0.0
`
