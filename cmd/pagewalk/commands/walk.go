package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ncobase/pagelink/client"
	"github.com/ncobase/pagelink/logging/logger"
	"github.com/ncobase/pagelink/paging"
	"github.com/spf13/cobra"
)

type walkOptions struct {
	rel      string
	from     string
	maxPages int
	perPage  int
	params   map[string]string
}

func newWalkCommand(rt *runtime) *cobra.Command {
	opts := &walkOptions{}

	cmd := &cobra.Command{
		Use:   "walk <path>",
		Short: "Print every item of a paged collection as JSON lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.setup(cmd); err != nil {
				return err
			}
			defer rt.close()
			return rt.report(runWalk(cmd, rt, args[0], opts))
		},
	}

	cmd.Flags().StringVar(&opts.rel, "rel", "next", "relation to follow: next or prev")
	cmd.Flags().StringVar(&opts.from, "from", "", "jump to this relation before walking: first or last")
	cmd.Flags().IntVar(&opts.maxPages, "max-pages", 0, "stop after this many pages, 0 for all")
	cmd.Flags().IntVar(&opts.perPage, "per-page", 0, "page size, overrides client.per_page")
	cmd.Flags().StringToStringVarP(&opts.params, "param", "p", nil, "extra request parameter key=value")
	return cmd
}

func runWalk(cmd *cobra.Command, rt *runtime, path string, opts *walkOptions) error {
	ctx := cmd.Context()

	rel, err := paging.ParseRelation(opts.rel)
	if err != nil {
		return err
	}
	if rel != paging.Next && rel != paging.Prev {
		return fmt.Errorf("--rel must be next or prev, got %s", rel)
	}

	params, err := requestParams(opts.perPage, opts.params)
	if err != nil {
		return err
	}

	page, err := client.List[json.RawMessage](ctx, rt.client, path, params)
	if err != nil {
		return err
	}

	if opts.from != "" {
		from, err := paging.ParseRelation(opts.from)
		if err != nil {
			return err
		}
		if page, err = page.Follow(ctx, from); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	pages, items := 0, 0
	err = paging.Walk(ctx, page, rel, opts.maxPages, func(p *paging.Cursor[json.RawMessage]) error {
		pages++
		for _, item := range p.Content() {
			if err := writeItem(out, item); err != nil {
				return err
			}
			items++
		}
		return nil
	})
	logger.Infof(ctx, "walked %d pages, %d items", pages, items)
	return err
}

// requestParams merges --per-page into the --param values
func requestParams(perPage int, extra map[string]string) (map[string]string, error) {
	params, err := client.ParamsFrom(client.ListOptions{PerPage: perPage})
	if err != nil {
		return nil, err
	}
	return client.MergeParams(extra, params), nil
}

func writeItem(w io.Writer, raw json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}
