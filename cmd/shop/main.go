// Command shop drives the storefront session from the terminal.
//
// Every invocation restores the persisted cart, applies one command
// and prints the resulting view.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/app"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/money"
	"github.com/niksmo/storefront/pkg/sigctx"
	"github.com/spf13/pflag"
)

const usage = `usage: shop [--config file] <command> [flags]

commands:
  products    list products, flags: --q --category --size --min-price --max-price
  categories  list categories
  add         add a product, flags: --id --size
  inc         increment a cart line, flags: --key
  dec         decrement a cart line, flags: --key
  rm          remove a cart line, flags: --key
  cart        print the cart summary
  checkout    place the order, flags: --name --email --phone --address --city --pin --payment
`

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	sigCtx, stop := sigctx.NotifyContext(context.Background())
	defer stop()

	cfg := config.Load()
	app.InitLogger(cfg)

	core, err := app.OpenCore(sigCtx, cfg)
	if err != nil {
		die(err)
	}
	defer core.Close()

	name, args := splitCommand(os.Args[1:])
	if err := run(sigCtx, core, name, args, os.Stdout); err != nil {
		core.Close()
		die(err)
	}
}

// splitCommand returns the first positional argument and the remaining
// arguments. A --config flag may appear before the command.
func splitCommand(args []string) (string, []string) {
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--config":
			i++
		case strings.HasPrefix(a, "-"):
		default:
			rest := append([]string{}, args[:i]...)
			return a, append(rest, args[i+1:]...)
		}
	}
	return "", args
}

func run(
	ctx context.Context, core *app.Core, name string, args []string, w io.Writer,
) error {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "config file")

	s := core.Session

	switch name {
	case "products":
		q := fs.String("q", "", "search query")
		category := fs.String("category", domain.CategoryAll, "category")
		sizes := fs.StringSlice("size", nil, "sizes, any of XS,S,M,L,XL")
		minPrice := fs.Int64("min-price", 0, "lower price bound")
		maxPrice := fs.Int64("max-price", 0, "upper price bound")
		if err := fs.Parse(args); err != nil {
			return err
		}

		cmds := []domain.Command{
			domain.SetQuery{Query: *q},
			domain.SetCategory{Category: *category},
		}
		for _, size := range *sizes {
			cmds = append(cmds, domain.ToggleSize{Size: size})
		}
		if fs.Changed("min-price") {
			cmds = append(cmds, domain.SetMinPrice{Price: minPrice})
		}
		if fs.Changed("max-price") {
			cmds = append(cmds, domain.SetMaxPrice{Price: maxPrice})
		}

		var res domain.Result
		for _, cmd := range cmds {
			var err error
			if res, err = s.Dispatch(ctx, cmd); err != nil {
				return err
			}
		}
		printProducts(w, res.Products)
		return nil

	case "categories":
		for _, c := range core.Catalog.Categories() {
			fmt.Fprintln(w, c)
		}
		return nil

	case "add":
		id := fs.String("id", "", "product id")
		size := fs.String("size", "", "size")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return dispatchAndPrintCart(ctx, s, w,
			domain.AddToCart{ProductID: *id, Size: *size},
		)

	case "inc", "dec", "rm":
		key := fs.String("key", "", "cart line key, e.g. D001-M")
		if err := fs.Parse(args); err != nil {
			return err
		}
		k := domain.CartKey(*key)
		var cmd domain.Command
		switch name {
		case "inc":
			cmd = domain.IncrementLine{Key: k}
		case "dec":
			cmd = domain.DecrementLine{Key: k}
		default:
			cmd = domain.RemoveLine{Key: k}
		}
		return dispatchAndPrintCart(ctx, s, w, cmd)

	case "cart":
		printSummary(w, s.Summary())
		return nil

	case "checkout":
		var f domain.OrderForm
		fs.StringVar(&f.FullName, "name", "", "full name")
		fs.StringVar(&f.Email, "email", "", "email")
		fs.StringVar(&f.Phone, "phone", "", "10-digit phone")
		fs.StringVar(&f.Address, "address", "", "address")
		fs.StringVar(&f.City, "city", "", "city")
		fs.StringVar(&f.PIN, "pin", "", "6-digit PIN")
		fs.StringVar(&f.Payment, "payment", domain.PaymentCOD, "payment method")
		if err := fs.Parse(args); err != nil {
			return err
		}

		res, err := s.Dispatch(ctx, domain.SubmitOrder{Form: f})
		if err != nil {
			return err
		}
		if len(res.FieldErrors) != 0 {
			for _, field := range domain.FormFields {
				if msg, ok := res.FieldErrors[field]; ok {
					fmt.Fprintf(w, "%s: %s\n", field, msg)
				}
			}
			return errors.New("invalid order form")
		}
		printConfirmation(w, res.Confirmation)
		return nil
	}

	return fmt.Errorf("unknown command %q\n\n%s", name, usage)
}

func dispatchAndPrintCart(
	ctx context.Context, s *service.Session, w io.Writer, cmd domain.Command,
) error {
	res, err := s.Dispatch(ctx, cmd)
	if err != nil {
		return err
	}
	printSummary(w, res.Summary)
	return nil
}

func printProducts(w io.Writer, products []domain.Product) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tSIZES\tPRICE\tRATING")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.1f\n",
			p.ID, p.Name, p.Category, strings.Join(p.Sizes, ","),
			money.Format(p.Price), p.Rating,
		)
	}
	if len(products) == 0 {
		fmt.Fprintln(tw, "no products match the filter")
	}
}

func printSummary(w io.Writer, sum domain.Summary) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	if len(sum.Items) == 0 {
		fmt.Fprintln(tw, "cart is empty")
		return
	}

	fmt.Fprintln(tw, "KEY\tNAME\tSIZE\tQTY\tPRICE\tTOTAL")
	for _, l := range sum.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			l.Key(), l.Name, l.Size, l.Qty,
			money.Format(l.Price), money.Format(l.LineTotal()),
		)
	}
	fmt.Fprintf(tw, "\t\t\t%d\tsubtotal\t%s\n", sum.ItemCount, money.Format(sum.Subtotal))
	fmt.Fprintf(tw, "\t\t\t\tshipping\t%s\n", money.Format(sum.Shipping))
	fmt.Fprintf(tw, "\t\t\t\ttax\t%s\n", money.Format(sum.Tax))
	fmt.Fprintf(tw, "\t\t\t\ttotal\t%s\n", money.Format(sum.Total))
}

func printConfirmation(w io.Writer, c *domain.Confirmation) {
	if c == nil {
		return
	}
	fmt.Fprintln(w, c.Message)
	fmt.Fprintf(w, "order %s, %s, paid by %s\n",
		c.OrderID, money.Code(c.Amount), c.Payment,
	)
	fmt.Fprintf(w, "delivery to %s %s\n", c.City, c.PIN)
}

func die(err error) {
	fmt.Fprintf(os.Stderr, "shop: %v\n", err)
	os.Exit(1)
}
