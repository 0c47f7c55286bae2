package commands

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

func addSync(topLevel *cobra.Command, configPath *string) {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "fetch assignments once and exit",
		Example: `
canvault sync
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := buildDeps(*configPath)
			if err != nil {
				return err
			}
			defer deps.Close()

			if deps.sync == nil {
				return errors.New("sync requires base_url, token and at least one course mapping")
			}

			ctx := context.Background()
			results, err := deps.sync.SyncAll(ctx)
			if err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					log.Printf("course %s: %v", r.CourseID, r.Err)
					continue
				}
				fmt.Printf("course %s (%s): %d new, %d skipped\n", r.CourseID, r.Subject, r.Added, r.Skipped)
			}

			if err := deps.sync.Reindex(ctx); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d course(s) failed", failed)
			}
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}
