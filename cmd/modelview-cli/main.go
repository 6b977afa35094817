package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/AlecAivazis/survey/v2"

	modelview "github.com/goliatone/go-modelview"
	"github.com/goliatone/go-modelview/pkg/htmlview"
	"github.com/goliatone/go-modelview/pkg/model"
	"github.com/goliatone/go-modelview/pkg/pageshell"
	"github.com/goliatone/go-modelview/pkg/styles"
)

func main() {
	input := flag.String("input", "record.yaml", "record definition path (YAML)")
	themeName := flag.String("theme", styles.DefaultTheme, "stylesheet theme to apply")
	editable := flag.Bool("editable", false, "render an editable form instead of a display view")
	output := flag.String("output", "", "output file (stdout if empty)")
	page := flag.Bool("page", false, "wrap the fragment in a full HTML document")
	interactive := flag.Bool("interactive", false, "pick render options interactively")
	flag.Parse()

	data, err := os.ReadFile(*input)
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}

	record, err := model.ParseYAML(data)
	if err != nil {
		log.Fatalf("Failed to parse record: %v", err)
	}

	opts := modelview.NewOptions()
	opts.Theme = *themeName
	opts.Editable = *editable

	if *interactive {
		if err := promptOptions(&opts); err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}
	}

	html, err := modelview.Render(record, opts)
	if err != nil {
		log.Fatalf("Failed to render record: %v", err)
	}

	if *page {
		shell, err := pageshell.New()
		if err != nil {
			log.Fatalf("Failed to build page shell: %v", err)
		}
		html, err = shell.RenderPage(record.Name, html, opts.LiveUpdate)
		if err != nil {
			log.Fatalf("Failed to render page: %v", err)
		}
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(html), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("View written to %s\n", *output)
	} else {
		fmt.Println(html)
	}
}

func promptOptions(opts *htmlview.Options) error {
	provider := styles.NewProvider()

	theme := opts.Theme
	if err := survey.AskOne(&survey.Select{
		Message: "Theme:",
		Options: provider.Themes(),
		Default: opts.Theme,
	}, &theme); err != nil {
		return err
	}
	opts.Theme = theme

	if err := survey.AskOne(&survey.Confirm{
		Message: "Render as editable form?",
		Default: opts.Editable,
	}, &opts.Editable); err != nil {
		return err
	}

	if err := survey.AskOne(&survey.Confirm{
		Message: "Enable live updates?",
		Default: opts.LiveUpdate,
	}, &opts.LiveUpdate); err != nil {
		return err
	}
	if !opts.LiveUpdate {
		return nil
	}

	mode := string(opts.LiveUpdateMode)
	if err := survey.AskOne(&survey.Select{
		Message: "Live update mode:",
		Options: []string{string(htmlview.LiveUpdateFull), string(htmlview.LiveUpdateInline), string(htmlview.LiveUpdateNone)},
		Default: mode,
	}, &mode); err != nil {
		return err
	}
	opts.LiveUpdateMode = htmlview.LiveUpdateMode(mode)
	return nil
}
