// Package setup provides an interactive wizard that writes a starter YAML
// configuration.
package setup

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

const configFileName = "marketpulse.config.yaml"

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1)
)

type yamlEntry struct {
	Platform     string `yaml:"platform"`
	Pair         string `yaml:"pair"`
	Interval     string `yaml:"interval"`
	Timezone     string `yaml:"timezone"`
	BucketOffset string `yaml:"bucket_offset"`
}

// RunTUI launches the terminal configuration wizard.
func RunTUI() error {
	var (
		platform string
		pair     string
		interval string
		timezone string
		offset   string
		confirm  bool
	)

	// defaults
	pair = "BTC_USDT"
	interval = "1h"
	timezone = "UTC"
	offset = "0h"

	fmt.Print("\033[H\033[2J") // Clear screen
	fmt.Println(headerStyle.Render("MARKETPULSE CONFIG WIZARD"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Daily bars, momentum and volume regimes for your instrument.\n"))

	fmt.Println(stepStyle.Render("STEP 1: DATA SOURCE"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose your data source").
				Options(
					huh.NewOption("Binance", "binance"),
					huh.NewOption("Bybit", "bybit"),
					huh.NewOption("Hyperliquid", "hyperliquid"),
				).
				Value(&platform),
		),
	).Run()
	if err != nil {
		return err
	}

	fmt.Println(stepStyle.Render("STEP 2: INSTRUMENT"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Instrument pair").
				Description("Base and quote currency separated by underscore").
				Placeholder("BTC_USDT").
				Value(&pair),
			huh.NewSelect[string]().
				Title("Observation interval").
				Options(
					huh.NewOption("1 hour", "1h"),
					huh.NewOption("4 hours", "4h"),
					huh.NewOption("1 day", "1d"),
				).
				Value(&interval),
		),
	).Run()
	if err != nil {
		return err
	}

	fmt.Println(stepStyle.Render("STEP 3: DAILY ALIGNMENT"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Target timezone").
				Description("IANA name such as UTC or Europe/Berlin").
				Value(&timezone),
			huh.NewInput().
				Title("Bucket boundary offset").
				Description("Shift of the daily boundary from local midnight, e.g. 7h").
				Value(&offset).
				Validate(func(s string) error {
					d, err := time.ParseDuration(s)
					if err != nil {
						return fmt.Errorf("not a duration: %s", s)
					}
					if d < 0 || d >= 24*time.Hour {
						return fmt.Errorf("offset must be within a day")
					}
					return nil
				}),
		),
	).Run()
	if err != nil {
		return err
	}

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Write %s?", configFileName)).
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}
	if !confirm {
		fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Aborted, nothing written."))
		return nil
	}

	out, err := yaml.Marshal([]yamlEntry{{
		Platform:     platform,
		Pair:         pair,
		Interval:     interval,
		Timezone:     timezone,
		BucketOffset: offset,
	}})
	if err != nil {
		return err
	}
	if err := os.WriteFile(configFileName, out, 0o644); err != nil {
		return err
	}

	fmt.Println(stepStyle.Render(fmt.Sprintf("Wrote %s. Run: marketpulse --config %s", configFileName, configFileName)))
	return nil
}
