package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/crytic/clif/logging"
	"github.com/crytic/clif/logging/colors"
)

const bannerTitle = `
                              ____ _     ___ _____
                             / ___| |   |_ _|  ___|
                            | |   | |    | || |_
                            | |___| |___ | ||  _|
                             \____|_____|___|_|
`

const bannerSubtitle = `
                                                    _       _ _
       ___ ___  _ __ ___  _ __ ___   __ _ _ __   __| |     | (_)_ __   ___
      / __/ _ \| '_ ` + "`" + ` _ \| '_ ` + "`" + ` _ \ / _` + "`" + ` | '_ \ / _` + "`" + ` |_____| | | '_ \ / _ \
     | (_| (_) | | | | | | | | | | | (_| | | | | (_| |_____| | | | | |  __/
      \___\___/|_| |_| |_|_| |_| |_|\__,_|_| |_|\__,_|     |_|_|_| |_|\___|`

const bannerTool = `
                            __
                           / _|_   _ ___________ _ __
                          | |_| | | |_  /_  / _ \ '__|
                          |  _| |_| |/ / / /  __/ |
                          |_|  \__,_/___/___\___|_|
`

// printBanner writes the startup banner to out. Styles are dropped when colors are disabled.
func printBanner(out io.Writer) error {
	blocks := []struct {
		text  string
		style lipgloss.Style
	}{
		{bannerTitle, logging.BannerTitleStyle},
		{bannerSubtitle, logging.BannerSubtitleStyle},
		{bannerTool, logging.BannerToolStyle},
	}

	for _, block := range blocks {
		text := block.text
		if colors.Enabled() {
			text = block.style.Render(text)
		}
		if _, err := fmt.Fprintln(out, text); err != nil {
			return err
		}
	}
	return nil
}
