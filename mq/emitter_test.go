package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"recipestore/models"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	published  map[string][][]byte
	deleted    []string
	publishErr error
}

func (f *fakeConn) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	if f.publishErr != nil {
		cmd.SetErr(f.publishErr)
		return cmd
	}
	if f.published == nil {
		f.published = map[string][][]byte{}
	}
	f.published[channel] = append(f.published[channel], message.([]byte))
	cmd.SetVal(1)
	return cmd
}

func (f *fakeConn) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.deleted = append(f.deleted, keys...)
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(int64(len(keys)))
	return cmd
}

func TestRecipeMigrated(t *testing.T) {
	conn := &fakeConn{}
	e := NewEmitter(conn)

	require.NoError(t, e.RecipeMigrated(context.Background(), "r1"))

	msgs := conn.published[IndexingChannel]
	require.Len(t, msgs, 1)
	var got models.Index
	require.NoError(t, json.Unmarshal(msgs[0], &got))
	assert.Equal(t, models.Index{EntityType: "recipe", Method: "PUT", EntityId: "r1"}, got)
	assert.Equal(t, []string{"recipe:r1"}, conn.deleted)
}

func TestRecipeMigratedPublishFailure(t *testing.T) {
	conn := &fakeConn{publishErr: errors.New("connection refused")}
	e := NewEmitter(conn)

	err := e.RecipeMigrated(context.Background(), "r1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), IndexingChannel)
	assert.Empty(t, conn.deleted)
}
