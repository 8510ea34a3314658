package cli

import (
	"context"
	"fmt"

	"github.com/bakeryops/ovenplan/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newOrderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Inspect and remove production orders",
	}

	cmd.AddCommand(
		newOrderListCmd(app),
		newOrderInspectCmd(app),
		newOrderRemoveCmd(app),
	)

	return cmd
}

func newOrderListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all production orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := app.Schedule.Orders(context.Background())
			if err != nil {
				return err
			}
			if len(orders) == 0 {
				fmt.Println("No orders.")
				return nil
			}
			fmt.Print(formatter.FormatOrders(orders))
			return nil
		},
	}
}

func newOrderInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <order-key>",
		Short: "Show an order with all its schedule entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			order, err := app.Schedule.GetOrder(ctx, args[0])
			if err != nil {
				return err
			}
			entries, err := app.Schedule.ListByOrder(ctx, order.OrderKey)
			if err != nil {
				return err
			}

			fmt.Println(formatter.Header(fmt.Sprintf("Order %s", order.OrderKey)))
			fmt.Printf("Product: %s   Quantity: %d   State: %s\n\n",
				order.ProductID, order.Quantity, formatter.StateBadge(order.State))
			fmt.Print(formatter.FormatEntries(entries))
			return nil
		},
	}
}

func newOrderRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove <order-key>",
		Short: "Delete an order and every downstream entry it feeds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			if !force && app.interactive() {
				confirmed := false
				form := huh.NewForm(huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("Delete order %s?", key)).
						Description("Removes its entries and every entry fed by them.").
						Value(&confirmed),
				))
				if err := form.Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("Aborted.")
					return nil
				}
			}

			deleted, err := app.Cascade.DeleteOrder(context.Background(), key)
			if err != nil {
				return err
			}
			fmt.Printf("Deleted order %s (%d schedule entries removed)\n", key, deleted)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation")
	return cmd
}
