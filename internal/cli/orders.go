package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/99minutos/order-portal/internal/core/domain"
	"github.com/99minutos/order-portal/internal/infrastructure/queue"
)

// tabs maps the --tab values of `order` to the module that gates them.
var tabs = map[string]string{
	"overview":  domain.ModuleOrders,
	"people":    domain.ModuleContacts,
	"documents": domain.ModuleDocuments,
	"tracking":  domain.ModuleTracking,
	"photos":    domain.ModulePhotos,
	"progress":  domain.ModuleProgress,
}

var tabModules = []string{
	domain.ModuleOrders,
	domain.ModuleContacts,
	domain.ModuleDocuments,
	domain.ModuleTracking,
	domain.ModulePhotos,
	domain.ModuleProgress,
}

func newOrdersCmd(app *App) *cobra.Command {
	var (
		page    int
		search  string
		details bool
	)

	cmd := &cobra.Command{
		Use:     "orders",
		Short:   "List orders",
		Args:    cobra.NoArgs,
		PreRunE: requireSession(app),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			env, err := app.Orders.ListOrders(ctx, page, search)
			if err != nil {
				return failed("list orders", err)
			}
			if err := env.Err(); err != nil {
				return err
			}

			var stages map[string]string
			if details {
				stages = overviewStages(ctx, app, env.Data.Results)
			}
			printOrders(cmd.OutOrStdout(), env.Data, page, stages)
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().StringVar(&search, "search", "", "search by order number, PO, PI or product")
	cmd.Flags().BoolVar(&details, "details", false, "fetch each order's overview for its current state")
	return cmd
}

// overviewStages fetches the overview of every listed order concurrently and
// returns its current state by order id. Failed fetches are left out.
func overviewStages(ctx context.Context, app *App, orders []domain.Order) map[string]string {
	var (
		mu     sync.Mutex
		stages = make(map[string]string, len(orders))
	)
	d := queue.NewDispatcher(app.DetailWorkers, app.Log)
	d.Start(ctx)
	for _, o := range orders {
		id := o.OrderID
		err := d.Enqueue(queue.Job{Key: id, Run: func(ctx context.Context) error {
			env, err := app.Orders.Overview(ctx, id)
			if err != nil {
				return fmt.Errorf("overview %s: %w", id, err)
			}
			if err := env.Err(); err != nil {
				return fmt.Errorf("overview %s: %w", id, err)
			}
			state := domain.CurrentState(env.Data.StateActivityLog)
			mu.Lock()
			stages[id] = fmt.Sprintf("%s (%s)", state, domain.TimelineStage(env.Data))
			mu.Unlock()
			return nil
		}})
		if err != nil {
			break
		}
	}
	if err := d.Drain(); err != nil {
		app.Log.Warn().Err(err).Msg("some order details could not be fetched")
	}
	return stages
}

// printOrders renders one page of orders. requested is the page asked for;
// the backend's page_number wins when it sends one.
func printOrders(out io.Writer, page domain.Page[domain.Order], requested int, stages map[string]string) {
	if len(page.Results) == 0 {
		fmt.Fprintln(out, "No orders found")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	header := "ID\tORDER\tPO\tSTATE\tITEMS\tTOTAL"
	if stages != nil {
		header += "\tTIMELINE"
	}
	fmt.Fprintln(w, header)
	for _, o := range page.Results {
		line := fmt.Sprintf("%s\t%s\t%s\t%s\t%s\t%s %s",
			o.OrderID, o.OrderNumber, o.POReferenceNo, o.LatestStateDisplayValue,
			domain.ItemsSummary(o.OrderItems), o.TotalAmount, o.Currency)
		if stages != nil {
			line += "\t" + stages[o.OrderID]
		}
		fmt.Fprintln(w, line)
	}
	_ = w.Flush()

	current := max(requested, 1)
	if page.PageNumber > 0 {
		current = page.PageNumber
	}
	info := domain.NewPageInfo(page.Count, page.PageSize, current)
	fmt.Fprintf(out, "Page %d of %d (%d orders)\n", info.CurrentPage, info.TotalPages, info.TotalCount)
}

func newOrderCmd(app *App) *cobra.Command {
	var tab string

	cmd := &cobra.Command{
		Use:     "order <id>",
		Short:   "Show one order",
		Args:    cobra.ExactArgs(1),
		PreRunE: requireSession(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, ok := tabs[tab]
			if !ok {
				return fmt.Errorf("unknown tab %q, want one of %s", tab, strings.Join(tabNames(), ", "))
			}
			if !app.Sessions.HasPermission(module, domain.ActionRead) {
				return fmt.Errorf("your account cannot view %s", tab)
			}
			if err := showTab(cmd.Context(), cmd.OutOrStdout(), app, args[0], tab); err != nil {
				return failed(tab, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&tab, "tab", "overview", "one of "+strings.Join(tabNames(), ", "))
	return cmd
}

func tabNames() []string {
	names := make([]string, 0, len(tabs))
	for name := range tabs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func showTab(ctx context.Context, out io.Writer, app *App, id, tab string) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	switch tab {
	case "overview":
		env, err := app.Orders.Overview(ctx, id)
		if err = check(env, err); err != nil {
			return err
		}
		printOverview(w, env.Data)
	case "people":
		env, err := app.Orders.Contacts(ctx, id)
		if err = check(env, err); err != nil {
			return err
		}
		fmt.Fprintln(w, "TYPE\tNAME\tEMAIL\tPHONE")
		for _, poc := range env.Data {
			for _, u := range poc.Users {
				fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\n", poc.POCType, u.GivenName, u.FamilyName, u.Email, u.PhoneNumber)
			}
		}
	case "documents":
		env, err := app.Orders.Documents(ctx, id)
		if err = check(env, err); err != nil {
			return err
		}
		fmt.Fprintln(w, "TYPE\tNAME\tOBJECT\tCREATED")
		for _, d := range env.Data.Results {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.DocumentTypeDisplayValue, d.DisplayName, d.Info.DocumentObject, d.Info.CreatedAt)
		}
	case "tracking":
		env, err := app.Orders.Tracking(ctx, id)
		if err = check(env, err); err != nil {
			return err
		}
		if env.Data.Message != "" {
			fmt.Fprintln(w, env.Data.Message)
		}
		fmt.Fprintln(w, "LOCATION\tACTIVITY\tVESSEL\tDATE\tREACHED\tDELAY")
		for _, e := range env.Data.Events {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\t%v\n", e.Location, e.ShipActivity, e.VesselName, e.TentativeDate, e.IsReached, e.Delay)
		}
	case "photos":
		env, err := app.Orders.StuffingPhotos(ctx, id)
		if err = check(env, err); err != nil {
			return err
		}
		for _, p := range env.Data.Results {
			fmt.Fprintf(w, "%s\t%s\n", p.Name, p.ImageObject)
		}
	case "progress":
		env, err := app.Orders.Progress(ctx, id)
		if err = check(env, err); err != nil {
			return err
		}
		for _, l := range env.Data {
			fmt.Fprintf(w, "%s\t%s\t%s\n", l.Timestamp, l.Actor, l.Entry)
		}
	}
	return nil
}

func printOverview(w io.Writer, d domain.OrderDetails) {
	fmt.Fprintf(w, "Order\t%s\n", d.OrderID)
	fmt.Fprintf(w, "PO / PI\t%s / %s\n", d.POReferenceNo, d.PIDocumentNo)
	fmt.Fprintf(w, "Payment terms\t%s\n", d.PaymentTermsDisplayValue)
	fmt.Fprintf(w, "Amount due\t%s of %s %s\n", d.AmountDue, d.Total, d.Currency)
	fmt.Fprintf(w, "Stage\t%s\n", domain.TimelineStage(d))
	for _, s := range d.StateActivityLog {
		marker := " "
		if s.IsCurrentState {
			marker = "*"
		}
		fmt.Fprintf(w, "  %s %s\t%s\n", marker, s.StateName, deref(s.ActualDate))
	}
	for _, item := range d.OrderItems {
		fmt.Fprintf(w, "  - %s\t%s x %s\n", item.ProductName, item.Quantity, item.SellingPrice)
	}
}

// check folds a transport error and an unsuccessful envelope into one error.
func check[T any](env *domain.Envelope[T], err error) error {
	if err != nil {
		return err
	}
	return env.Err()
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
