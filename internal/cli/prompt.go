package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// confirmDelete asks the user to confirm a destructive delete
// submission. Only an explicit "y"/"yes" confirms; anything else,
// including a read error, declines.
func confirmDelete(provider, filename string) (bool, error) {
	fmt.Printf("\n⚠️  This will DELETE the records described by '%s' (provider: %s).\n", filename, provider)
	fmt.Print("Proceed? [y/N]: ")

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
