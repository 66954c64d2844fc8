package cli

import (
	"fmt"

	"github.com/diillson/aws-external-assets-go/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner prints the banner with version information.
func displayWelcomeBanner() {
	banner := `
     _____      _                        _      _                 _
    | ____|_  _| |_ ___ _ __ _ __   __ _| |    / \   ___ ___  ___| |_ ___
    |  _| \ \/ / __/ _ \ '__| '_ \ / _' | |   / _ \ / __/ __|/ _ \ __/ __|
    | |___ >  <| ||  __/ |  | | | | (_| | |  / ___ \\__ \__ \  __/ |_\__ \
    |_____/_/\_\\__\___|_|  |_| |_|\__,_|_| /_/   \_\___/___/\___|\__|___/
        `
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))
	fmt.Println(blue(fmt.Sprintf("AWS External Assets Inventory (v%s)", version.FormatVersion())))
}
