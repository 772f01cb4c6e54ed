package cli

import (
	"context"
	"fmt"
	"os"
)

// Comments prints the comment thread for a product.
func (a *App) Comments(ctx context.Context, id string) error {
	productID, err := parseID(id)
	if err != nil {
		return err
	}
	comments, err := a.client.CommentsByProduct(ctx, productID)
	if err != nil {
		return err
	}
	if len(comments) == 0 {
		printlnFn("No comments.")
		return nil
	}
	for _, c := range comments {
		author := "anonymous"
		if c.User != nil {
			author = c.User.Name + " " + c.User.Surname
		}
		printlnFn(fmt.Sprintf("#%d %s: %s", c.ID, author, c.Text))
	}
	return nil
}

// AddComment prompts for a comment body and posts it.
func (a *App) AddComment(ctx context.Context, id string) error {
	productID, err := parseID(id)
	if err != nil {
		return err
	}
	text, err := GetMultiline(a.reader, "Comment", os.Stdout)
	if err != nil {
		return err
	}
	if text == "" {
		printlnFn("Empty comment, nothing posted.")
		return nil
	}
	if _, err := a.client.AddComment(ctx, productID, text); err != nil {
		return err
	}
	printlnFn("Comment posted.")
	return nil
}
