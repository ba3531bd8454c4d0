package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/boutique/app/repositories"
	"github.com/shashiranjanraj/boutique/app/services"
	"github.com/shashiranjanraj/boutique/database/seeders"
	"github.com/shashiranjanraj/boutique/internal/server"
	"github.com/shashiranjanraj/boutique/pkg/database"
)

// withStore boots the database, runs fn and disconnects.
func withStore(ctx context.Context, fn func(*database.Store) error) error {
	store, err := server.Boot(ctx)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())
	return fn(store)
}

// boutique db:index
var dbIndexCmd = &cobra.Command{
	Use:   "db:index",
	Short: "Create the secondary indexes on every collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(store *database.Store) error {
			if err := store.EnsureIndexes(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Indexes are up to date.")
			return nil
		})
	},
}

// boutique seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(store *database.Store) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
			return seeders.RunAll(cmd.Context(), store, cmd.OutOrStdout())
		})
	},
}

var driftEmail string

// boutique ledger:drift --email owner@example.com
var ledgerDriftCmd = &cobra.Command{
	Use:   "ledger:drift",
	Short: "List orders whose advance payment is not backed by linked payments",
	RunE: func(cmd *cobra.Command, args []string) error {
		if driftEmail == "" {
			return errors.New("--email is required")
		}
		return withStore(cmd.Context(), func(store *database.Store) error {
			users := repositories.NewUserRepository(store.Collection(database.Users))
			user, err := users.FindByEmail(cmd.Context(), driftEmail)
			if err != nil {
				return fmt.Errorf("lookup %s: %w", driftEmail, err)
			}

			ledger := services.NewLedgerService(
				repositories.NewOrderRepository(store.Collection(database.Orders)),
				repositories.NewPaymentRepository(store.Collection(database.Payments)),
			)
			entries, err := ledger.AdvanceDrift(cmd.Context(), user.ID)
			if err != nil {
				return err
			}
			return printDrift(cmd.OutOrStdout(), entries)
		})
	},
}

func printDrift(out io.Writer, entries []services.DriftEntry) error {
	if len(entries) == 0 {
		fmt.Fprintln(out, "No drift: every advance payment is backed by linked payments.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ORDER\tCUSTOMER\tCONTACT\tADVANCE\tLINKED\tMISSING")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.2f\t%.2f\n",
			e.OrderID.Hex(), e.CustomerName, e.CustomerContact, e.AdvancePayment, e.LinkedPaid, e.Missing)
	}
	return w.Flush()
}

func init() {
	ledgerDriftCmd.Flags().StringVar(&driftEmail, "email", "", "Email of the account to inspect")
}
