package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"chronova/internal/adapter/repository"
	"chronova/internal/adapter/seed"
	"chronova/internal/infrastructure/firebase"
)

var (
	seedFileFlag        string
	seedProjectFlag     string
	seedCredentialsFlag string
	seedPruneFlag       bool
	seedDryRunFlag      bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write a catalog fixture to Firestore",
	Long:  `Upsert the categories, brands and products of a YAML fixture into a Firebase project's Firestore.`,
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFileFlag, "file", "f", "", "Catalog fixture (YAML)")
	seedCmd.Flags().StringVarP(&seedProjectFlag, "project", "p", os.Getenv("FIREBASE_PROJECT_ID"), "Firebase project id")
	seedCmd.Flags().StringVar(&seedCredentialsFlag, "credentials", os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"), "Service account file")
	seedCmd.Flags().BoolVar(&seedPruneFlag, "prune", false, "Soft-delete stored products missing from the fixture")
	seedCmd.Flags().BoolVar(&seedDryRunFlag, "dry-run", false, "Validate the fixture without writing")
	_ = seedCmd.MarkFlagRequired("file")
}

func runSeed(cmd *cobra.Command, args []string) error {
	f, err := seed.LoadFile(seedFileFlag)
	if err != nil {
		return err
	}

	opts := seed.Options{Prune: seedPruneFlag, DryRun: seedDryRunFlag}
	out := cmd.OutOrStdout()

	if seedDryRunFlag {
		summary, err := seed.Apply(cmd.Context(), f, seed.Store{}, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d categories, %d brands, %d products are valid\n", len(f.Categories), len(f.Brands), len(f.Products))
		printDangling(cmd, summary)
		return nil
	}

	if seedProjectFlag == "" {
		return fmt.Errorf("--project or FIREBASE_PROJECT_ID is required")
	}

	client, err := firebase.NewFirestoreClient(cmd.Context(), seedProjectFlag, firebase.Credentials{
		JSON: os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"),
		Path: seedCredentialsFlag,
	})
	if err != nil {
		return err
	}
	defer client.Close()

	summary, err := seed.Apply(cmd.Context(), f, seed.Store{
		Products:   repository.NewFirestoreProductRepository(client),
		Categories: repository.NewFirestoreCategoryRepository(client),
		Brands:     repository.NewFirestoreBrandRepository(client),
	}, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Seeded %d categories, %d brands; %d products created, %d updated, %d pruned\n",
		summary.Categories, summary.Brands, summary.Created, summary.Updated, summary.Pruned)
	printDangling(cmd, summary)
	return nil
}

func printDangling(cmd *cobra.Command, summary *seed.Summary) {
	for _, id := range summary.Dangling {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: product %s references an unknown category or brand\n", id)
	}
}
