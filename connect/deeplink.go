package connect

import (
	"net/url"

	"github.com/google/uuid"
)

// ForumLoginPath is where the forum completes an SSO login handoff.
const ForumLoginPath = "/session/sso_login"

// DeepLinkBuilder renders "join discussion" links for UI collaborators.
// With SSO disabled the link points straight at the forum; with SSO
// enabled it points at the bridge's own GET endpoint carrying a signed
// envelope, so the visitor lands in the forum already logged in. Pure:
// no network, no persisted state.
type DeepLinkBuilder struct {
	forum     *url.URL
	bridgeSSO *url.URL
	codec     Codec
	signer    Signer
	newNonce  func() string
}

// DeepLinkOption configures a DeepLinkBuilder.
type DeepLinkOption func(*DeepLinkBuilder)

// WithNonceFunc overrides nonce generation (primarily for testing).
func WithNonceFunc(newNonce func() string) DeepLinkOption {
	return func(b *DeepLinkBuilder) {
		b.newNonce = newNonce
	}
}

// NewDeepLinkBuilder builds links against the given forum origin and the
// bridge's public /sso endpoint URL.
func NewDeepLinkBuilder(secret []byte, forumBaseURL, bridgeSSOURL *url.URL, options ...DeepLinkOption) *DeepLinkBuilder {
	b := &DeepLinkBuilder{
		forum:     forumBaseURL,
		bridgeSSO: bridgeSSOURL,
		signer:    NewSigner(secret),
		newNonce:  uuid.NewString,
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

// Link returns the URL for a forum category or topic path such as
// "/c/announcements" or "/t/welcome/42".
func (b *DeepLinkBuilder) Link(forumPath string, enableSSO bool) string {
	target := *b.forum
	target = *target.JoinPath(forumPath)
	if !enableSSO {
		return target.String()
	}

	// Mirror the envelope the forum itself would construct: a nonce, the
	// forum's login completion URL, and the eventual destination path.
	returnURL := *b.forum
	returnURL = *returnURL.JoinPath(ForumLoginPath)
	payload := b.codec.Encode(Pairs{
		{Key: FieldNonce, Value: b.newNonce()},
		{Key: FieldReturnURL, Value: returnURL.String()},
		{Key: "return_path", Value: forumPath},
	})

	link := *b.bridgeSSO
	query := link.Query()
	query.Set(queryParamSSO, payload)
	query.Set(queryParamSig, b.signer.Sign(payload))
	link.RawQuery = query.Encode()
	return link.String()
}
