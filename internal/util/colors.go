package util

import "github.com/fatih/color"

var colorOptions = map[string]color.Attribute{
	"red":       color.FgHiRed,
	"green":     color.FgGreen,
	"yellow":    color.FgYellow,
	"underline": color.Underline,
	"bold":      color.Bold,
}

// ColorOutput wraps text in the named terminal attributes. Unknown names are
// ignored.
func ColorOutput(text string, options ...string) string {
	attributes := make([]color.Attribute, 0, len(options))
	for _, option := range options {
		if attr, ok := colorOptions[option]; ok {
			attributes = append(attributes, attr)
		}
	}
	return color.New(attributes...).Sprint(text)
}
