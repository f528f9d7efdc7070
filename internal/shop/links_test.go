package shop

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var attr = Attribution{Source: "roomvibe", Medium: "app", Campaign: "default"}

func TestProductURL(t *testing.T) {
	l := NewLinks(" https://irenart.studio/ ", attr)
	assert.Equal(t, "https://irenart.studio/products/sunset", l.ProductURL("sunset", ""))
	assert.Equal(t, "https://irenart.studio/products/sunset?variant=4242", l.ProductURL("sunset", "4242"))
}

func TestCheckoutURLForVariant(t *testing.T) {
	l := NewLinks("irenart.studio", attr)

	got, err := l.CheckoutURL(CheckoutRequest{VariantID: "4242", Quantity: 0, Discount: "WELCOME"})
	require.NoError(t, err)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "irenart.studio", u.Host)
	assert.Equal(t, "/cart/4242:1", u.Path)
	assert.Equal(t, "roomvibe", u.Query().Get("utm_source"))
	assert.Equal(t, "app", u.Query().Get("utm_medium"))
	assert.Equal(t, "default", u.Query().Get("utm_campaign"))
	assert.Equal(t, "WELCOME", u.Query().Get("discount"))
}

func TestCheckoutURLMergesExistingQuery(t *testing.T) {
	l := NewLinks("irenart.studio", attr)

	got, err := l.CheckoutURL(CheckoutRequest{ProductURL: "https://irenart.studio/products/wave?variant=7&utm_source=old"})
	require.NoError(t, err)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "/products/wave", u.Path)
	assert.Equal(t, "7", u.Query().Get("variant"))
	assert.Equal(t, "roomvibe", u.Query().Get("utm_source"))
	assert.Empty(t, u.Query().Get("discount"))
}

func TestCheckoutURLFallsBackToStore(t *testing.T) {
	l := NewLinks("irenart.studio", attr)

	got, err := l.CheckoutURL(CheckoutRequest{})
	require.NoError(t, err)
	assert.Equal(t, "https://irenart.studio?utm_campaign=default&utm_medium=app&utm_source=roomvibe", got)
}

func TestCheckoutURLRejectsBadURL(t *testing.T) {
	_, err := NewLinks("irenart.studio", attr).CheckoutURL(CheckoutRequest{ProductURL: "http://[::1"})
	assert.Error(t, err)
}
