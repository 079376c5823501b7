package firestore

import (
	"context"
	"strconv"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// collection is one named Firestore collection plus its ID counter
type collection struct {
	client *firestore.Client
	name   string
	prefix string
}

func newCollection(client *firestore.Client, name string) collection {
	return collection{client: client, name: name}
}

func (c *collection) path() string {
	if c.prefix != "" {
		return c.prefix + "_" + c.name
	}
	return c.name
}

func (c *collection) counterPath() string {
	if c.prefix != "" {
		return c.prefix + "_counters"
	}
	return "counters"
}

func (c *collection) ref() *firestore.CollectionRef {
	return c.client.Collection(c.path())
}

func (c *collection) doc(id string) *firestore.DocumentRef {
	return c.ref().Doc(id)
}

// nextID increments the collection's counter in a transaction and returns
// the new value as a decimal document ID
func (c *collection) nextID(ctx context.Context) (string, error) {
	counterRef := c.client.Collection(c.counterPath()).Doc(c.name + "_counter")

	var nextID int64
	err := c.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(counterRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				nextID = 1
				return tx.Set(counterRef, map[string]interface{}{
					"value": nextID,
				})
			}
			return goerr.Wrap(err, "failed to get counter")
		}

		currentValue, err := doc.DataAt("value")
		if err != nil {
			return goerr.Wrap(err, "failed to get counter value")
		}

		val, ok := currentValue.(int64)
		if !ok {
			return goerr.New("counter value is not of type int64", goerr.V("value", currentValue))
		}
		nextID = val + 1
		return tx.Update(counterRef, []firestore.Update{
			{Path: "value", Value: nextID},
		})
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to get next ID", goerr.V("collection", c.path()))
	}

	return strconv.FormatInt(nextID, 10), nil
}

// exists fails with ErrNotFound when the document is missing
func (c *collection) exists(ctx context.Context, id, kind string) error {
	if _, err := c.doc(id).Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, kind+" not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check "+kind+" existence", goerr.V("id", id))
	}
	return nil
}

// get decodes one document into T
func get[T any](ctx context.Context, c *collection, id, kind string) (*T, error) {
	snap, err := c.doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, kind+" not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get "+kind, goerr.V("id", id))
	}

	var v T
	if err := snap.DataTo(&v); err != nil {
		return nil, goerr.Wrap(err, "failed to decode "+kind, goerr.V("id", id))
	}
	return &v, nil
}

// collect decodes every document of the iterator into T
func collect[T any](iter *firestore.DocumentIterator, kind string) ([]*T, error) {
	defer iter.Stop()

	items := make([]*T, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate "+kind)
		}

		var v T
		if err := snap.DataTo(&v); err != nil {
			return nil, goerr.Wrap(err, "failed to decode "+kind, goerr.V("doc_id", snap.Ref.ID))
		}
		items = append(items, &v)
	}
	return items, nil
}

// remove deletes a document after checking that it exists
func (c *collection) remove(ctx context.Context, id, kind string) error {
	if err := c.exists(ctx, id, kind); err != nil {
		return err
	}
	if _, err := c.doc(id).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete "+kind, goerr.V("id", id))
	}
	return nil
}
