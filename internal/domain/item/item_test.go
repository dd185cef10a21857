package item

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borrowhub/service-rental/internal/apperr"
)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestNewItem(t *testing.T) {
	ownerID := uuid.New()

	t.Run("valid item", func(t *testing.T) {
		itm, err := NewItem(ownerID, "drill", "cordless drill", true, nil)
		require.NoError(t, err)
		assert.True(t, itm.Available())
		assert.True(t, itm.IsOwnedBy(ownerID))
		assert.Nil(t, itm.RequestID())
	})

	t.Run("item answering a request keeps the reference", func(t *testing.T) {
		reqID := uuid.New()
		itm, err := NewItem(ownerID, "ladder", "3m ladder", true, &reqID)
		require.NoError(t, err)
		require.NotNil(t, itm.RequestID())
		assert.Equal(t, reqID, *itm.RequestID())
	})

	t.Run("missing owner is rejected", func(t *testing.T) {
		_, err := NewItem(uuid.Nil, "drill", "cordless drill", true, nil)
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		_, err := NewItem(ownerID, " ", "cordless drill", true, nil)
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("blank description is rejected", func(t *testing.T) {
		_, err := NewItem(ownerID, "drill", "", true, nil)
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}

func TestItemPatch(t *testing.T) {
	ownerID := uuid.New()

	t.Run("fields update independently", func(t *testing.T) {
		itm, err := NewItem(ownerID, "drill", "cordless drill", true, nil)
		require.NoError(t, err)

		require.NoError(t, itm.Patch(nil, nil, boolPtr(false)))
		assert.Equal(t, "drill", itm.Name())
		assert.False(t, itm.Available())

		require.NoError(t, itm.Patch(strPtr("hammer drill"), nil, nil))
		assert.Equal(t, "hammer drill", itm.Name())
		assert.Equal(t, "cordless drill", itm.Description())
		assert.False(t, itm.Available())
	})

	t.Run("blank values are rejected", func(t *testing.T) {
		itm, err := NewItem(ownerID, "drill", "cordless drill", true, nil)
		require.NoError(t, err)

		require.Error(t, itm.Patch(strPtr(""), nil, nil))
		require.Error(t, itm.Patch(nil, strPtr("  "), nil))
		assert.Equal(t, "drill", itm.Name())
		assert.Equal(t, "cordless drill", itm.Description())
	})
}

func TestNewComment(t *testing.T) {
	author := AuthorRef{ID: uuid.New(), Name: "bob"}
	itemID := uuid.New()

	t.Run("valid comment", func(t *testing.T) {
		c, err := NewComment(itemID, author, "worked great")
		require.NoError(t, err)
		assert.Equal(t, itemID, c.ItemID())
		assert.Equal(t, author, c.Author())
		assert.Equal(t, "worked great", c.Text())
	})

	t.Run("blank text is rejected", func(t *testing.T) {
		_, err := NewComment(itemID, author, "   ")
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}
