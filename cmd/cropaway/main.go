package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"cropaway/internal/services"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			if services.IsUserError(err) {
				fmt.Fprintln(os.Stderr, err)
			} else {
				fmt.Fprintln(os.Stderr, "cropaway:", err)
			}
		}
		os.Exit(1)
	}
}
