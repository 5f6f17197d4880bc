package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"ironbook/internal/book"
	"ironbook/internal/config"
	"ironbook/internal/matching"
	"ironbook/internal/order"
	"ironbook/internal/stp"
)

func newReplayCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <events-file>",
		Short: "Feed a file of newline-delimited order events through the engine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(*configPath, args[0])
		},
	}
}

// Each line is: id,owner,side,type,price,qty,ts[,link]
// side is buy|sell, type is limit|market|cancel, link is the cancelled
// order's id (required only for cancel lines).
func parseReplayLine(line string) (*order.Order, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 7 {
		return nil, fmt.Errorf("expected at least 7 comma-separated fields, got %d", len(fields))
	}

	id, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("id: %w", err)
	}
	owner, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("owner: %w", err)
	}

	var side order.Side
	switch fields[2] {
	case "buy":
		side = order.Buy
	case "sell":
		side = order.Sell
	default:
		side = order.None
	}

	price, err := strconv.ParseInt(fields[4], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}
	qty, err := strconv.ParseInt(fields[5], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("qty: %w", err)
	}
	ts, err := strconv.ParseUint(fields[6], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("ts: %w", err)
	}

	switch fields[3] {
	case "limit":
		return order.NewLimitOrder(order.ID(id), order.OwnerID(owner), order.PriceTicks(price), order.Quantity(qty), side, ts), nil
	case "market":
		return order.NewMarketOrder(order.ID(id), order.OwnerID(owner), order.Quantity(qty), side, ts), nil
	case "cancel":
		if len(fields) < 8 {
			return nil, fmt.Errorf("cancel line missing link field")
		}
		link, err := strconv.ParseUint(fields[7], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("link: %w", err)
		}
		return order.NewCancelOrder(order.ID(id), order.OwnerID(owner), order.ID(link), ts), nil
	default:
		return nil, fmt.Errorf("unknown type %q", fields[3])
	}
}

func runReplay(configPath, eventsPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	policy, err := stpPolicyFor(cfg.Book.STPPolicy)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	f, err := os.Open(eventsPath)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	defer f.Close()

	engine := matching.New(book.New(), policy, nil, nil)

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		o, err := parseReplayLine(line)
		if err != nil {
			return fmt.Errorf("replay: line %d: %w", lineNo, err)
		}

		reason := engine.Match(o)
		if reason != order.None {
			fmt.Printf("line %d: %s -> rejected: %s\n", lineNo, o, reason)
			continue
		}
		fmt.Printf("line %d: %s\n", lineNo, o)
	}
	return scanner.Err()
}
