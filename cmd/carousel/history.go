package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fwojciec/carousel"
	"github.com/fwojciec/carousel/fs"
)

// errNoDatabase is returned by commands that read recorded runs when no
// database is configured.
var errNoDatabase = carousel.Errorf(carousel.EINVALID, "no database configured (set --db or CAROUSEL_DB)")

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	if deps.Extractions == nil {
		return errNoDatabase
	}

	filter := carousel.ExtractionFilter{Limit: c.Limit}
	if c.List != "" {
		filter.ListName = &c.List
	}

	exts, err := deps.Extractions.FindExtractions(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carousel.ErrorMessage(err))
		return err
	}

	if len(exts) == 0 {
		fmt.Fprintln(deps.Stdout, "No extractions recorded")
		return nil
	}

	tw := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEXTRACTED\tLIST\tITEMS\tHASH\tSOURCE")
	for _, ext := range exts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			ext.ID,
			ext.ExtractedAt.Format("2006-01-02 15:04:05"),
			ext.Result.ListName,
			len(ext.Result.Items),
			ext.ContentHash,
			ext.SourcePath,
		)
	}
	return tw.Flush()
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	if deps.Extractions == nil {
		return errNoDatabase
	}

	ext, err := deps.Extractions.FindExtractionByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carousel.ErrorMessage(err))
		return err
	}

	return fs.Encode(deps.Stdout, carousel.Format(c.Format), ext.Result)
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if deps.Extractions == nil {
		return errNoDatabase
	}

	if err := deps.Extractions.DeleteExtraction(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carousel.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted extraction %s\n", c.ID)
	return nil
}
