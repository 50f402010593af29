package display

import (
	"fmt"
	"os"

	"github.com/Anshulgada/file-mate/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Magenta != "" {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, ` _____ _ _      __  __       _
|  ___(_) | ___|  \/  | __ _| |_ ___
| |_  | | |/ _ \ |\/| |/ _`+"`"+` | __/ _ \
|  _| | | |  __/ |  | | (_| | ||  __/
|_|   |_|_|\___|_|  |_|\__,_|\__\___|
`)
	if term.Magenta != "" {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
