package listings

import (
	"testing"

	"talent-marketplace/internal/domain/access"
	"talent-marketplace/internal/domain/listings"

	"github.com/stretchr/testify/assert"
)

func TestActionFor(t *testing.T) {
	assert.Equal(t, access.ActionShareItems, ActionFor(listings.KindShare))
	assert.Equal(t, access.ActionRentOrSell, ActionFor(listings.KindRent))
	assert.Equal(t, access.ActionRentOrSell, ActionFor(listings.KindSell))
	assert.True(t, access.Restricts(ActionFor(listings.KindShare)))
}
