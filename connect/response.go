package connect

import (
	"net/url"
	"sort"
	"strconv"
)

// Identity payload field names fixed by the protocol.
const (
	FieldExternalID  = "external_id"
	FieldEmail       = "email"
	FieldUsername    = "username"
	FieldName        = "name"
	FieldAdmin       = "admin"
	FieldModerator   = "moderator"
	FieldAvatarURL   = "avatar_url"
	customFieldPfx   = "custom."
	queryParamSSO    = "sso"
	queryParamSig    = "sig"
)

// ResponseBuilder serializes identity attributes plus the echoed nonce
// into a signed payload and appends it to the forum's return URL.
// Deterministic for identical inputs; performs no I/O.
type ResponseBuilder struct {
	codec  Codec
	signer Signer
}

func NewResponseBuilder(secret []byte) *ResponseBuilder {
	return &ResponseBuilder{signer: NewSigner(secret)}
}

// Build returns the redirect URL carrying sso and sig query parameters.
// The nonce is echoed verbatim; custom fields are emitted in sorted key
// order so identical identities always produce identical bytes.
func (b *ResponseBuilder) Build(nonce string, identity Identity, returnURL *url.URL) string {
	pairs := Pairs{
		{Key: FieldNonce, Value: nonce},
		{Key: FieldExternalID, Value: identity.ExternalID},
		{Key: FieldEmail, Value: identity.Email},
		{Key: FieldUsername, Value: identity.Username},
		{Key: FieldName, Value: identity.Name},
		{Key: FieldAdmin, Value: strconv.FormatBool(identity.Admin)},
		{Key: FieldModerator, Value: strconv.FormatBool(identity.Moderator)},
	}
	if identity.AvatarURL != "" {
		pairs = append(pairs, Pair{Key: FieldAvatarURL, Value: identity.AvatarURL})
	}

	customKeys := make([]string, 0, len(identity.CustomFields))
	for key := range identity.CustomFields {
		customKeys = append(customKeys, key)
	}
	sort.Strings(customKeys)
	for _, key := range customKeys {
		pairs = append(pairs, Pair{Key: customFieldPfx + key, Value: identity.CustomFields[key]})
	}

	payload := b.codec.Encode(pairs)
	signature := b.signer.Sign(payload)

	redirect := *returnURL
	query := redirect.Query()
	query.Set(queryParamSSO, payload)
	query.Set(queryParamSig, signature)
	redirect.RawQuery = query.Encode()
	return redirect.String()
}
