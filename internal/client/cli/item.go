package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/itemkeeper/internal/api"
	"github.com/dmitrijs2005/itemkeeper/internal/filex"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
)

// readFile and saveFile are test seams for attachment I/O.
var (
	readFile = os.ReadFile
	saveFile = filex.SaveToSubdDir
)

const (
	defaultListLimit = 100

	// clearDescription, entered while editing, removes the description.
	clearDescription = "-"
)

var (
	errNoItemID  = errors.New("item id is required")
	errListUsage = errors.New("usage: list [skip] [limit]")
)

// itemID takes the id from the first argument or asks for it.
func (a *App) itemID(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	id, err := getSimpleText(a.reader, "Enter item id", a.out)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", errNoItemID
	}
	return id, nil
}

// Add prompts for a title and an optional multi-line description.
func (a *App) Add(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}

	text, err := getMultiline(a.reader, "Enter description (optional)", a.out)
	if err != nil {
		return err
	}

	var description *string
	if text != "" {
		description = &text
	}

	it, err := a.client.CreateItem(ctx, title, description)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created item %s\n", it.ID)
	return nil
}

// List prints a page of the caller's items. args may hold skip and limit.
func (a *App) List(ctx context.Context, args []string) error {
	offset, limit := 0, defaultListLimit

	if len(args) > 2 {
		return errListUsage
	}
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return errListUsage
		}
		offset = v
	}
	if len(args) > 1 {
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return errListUsage
		}
		limit = v
	}

	items, err := a.client.ListItems(ctx, offset, limit)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		fmt.Fprintln(a.out, "No items")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCREATED")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", it.ID, it.Title, it.CreatedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := a.itemID(args)
	if err != nil {
		return err
	}

	it, err := a.client.GetItem(ctx, id)
	if err != nil {
		return err
	}

	printItem(a.out, it)
	return nil
}

// Edit asks for a new title and description. Empty answers keep the current
// value; "-" as the description clears it.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := a.itemID(args)
	if err != nil {
		return err
	}

	var patch models.ItemPatch

	title, err := getSimpleText(a.reader, "New title (empty keeps current)", a.out)
	if err != nil {
		return err
	}
	if title != "" {
		patch.Title = models.Some(title)
	}

	text, err := getMultiline(a.reader, "New description (empty keeps current, '-' clears)", a.out)
	if err != nil {
		return err
	}
	switch text {
	case "":
	case clearDescription:
		patch.Description = models.Some[*string](nil)
	default:
		patch.Description = models.Some(&text)
	}

	if patch.IsEmpty() {
		fmt.Fprintln(a.out, "Nothing to change")
		return nil
	}

	it, err := a.client.UpdateItem(ctx, id, patch)
	if err != nil {
		return err
	}

	printItem(a.out, it)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := a.itemID(args)
	if err != nil {
		return err
	}

	if err := a.client.DeleteItem(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Deleted item %s\n", id)
	return nil
}

// Attach uploads a local file as the attachment of an item: attach <id> <path>.
func (a *App) Attach(ctx context.Context, args []string) error {
	id, err := a.itemID(args)
	if err != nil {
		return err
	}

	var path string
	if len(args) > 1 {
		path = args[1]
	} else if path, err = getSimpleText(a.reader, "Enter file path", a.out); err != nil {
		return err
	}

	data, err := readFile(path)
	if err != nil {
		return fmt.Errorf("error reading file: %w", err)
	}

	if err := a.client.UploadAttachment(ctx, id, data); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Uploaded %d bytes to item %s\n", len(data), id)
	return nil
}

// Fetch downloads the attachment of an item into the download directory,
// named after the item id.
func (a *App) Fetch(ctx context.Context, args []string) error {
	id, err := a.itemID(args)
	if err != nil {
		return err
	}

	data, err := a.client.DownloadAttachment(ctx, id)
	if err != nil {
		return err
	}

	path, err := saveFile(a.config.DownloadDir, id, data)
	if err != nil {
		return fmt.Errorf("error saving attachment: %w", err)
	}

	fmt.Fprintf(a.out, "Saved %d bytes to %s\n", len(data), path)
	return nil
}

func printItem(w io.Writer, it *api.Item) {
	description := "-"
	if it.Description != nil {
		description = *it.Description
	}
	fmt.Fprintf(w, "ID:          %s\nTitle:       %s\nDescription: %s\nCreated:     %s\n",
		it.ID, it.Title, description, it.CreatedAt.Format("2006-01-02 15:04:05"))
}
