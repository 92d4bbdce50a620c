package connect

import (
	"net/url"

	"github.com/pkg/errors"
)

// Payload field names fixed by the protocol.
const (
	FieldNonce     = "nonce"
	FieldReturnURL = "return_sso_url"
)

// Payload is a decoded, fully validated inbound request. Nonce is opaque
// and echoed back verbatim; ReturnURL has already passed the origin check.
type Payload struct {
	Nonce     string
	ReturnURL *url.URL
	Extras    Pairs
}

// RequestValidator checks an inbound sso/sig parameter pair. The checks
// run as a fixed sequence, terminal on first failure:
//
//	RECEIVED -> SIGNATURE_CHECKED -> DECODED -> FIELDS_CHECKED -> ORIGIN_CHECKED
//
// The signature is always verified before the payload is decoded, so no
// attacker-controlled bytes are parsed without a valid signature.
type RequestValidator struct {
	codec  Codec
	signer Signer
	forum  *url.URL
}

func NewRequestValidator(secret []byte, forumBaseURL *url.URL) *RequestValidator {
	return &RequestValidator{
		signer: NewSigner(secret),
		forum:  forumBaseURL,
	}
}

// Validate runs the full check sequence and returns the decoded payload.
func (v *RequestValidator) Validate(sso, sig string) (*Payload, error) {
	if sso == "" || sig == "" {
		return nil, errors.Wrap(ErrMissingParameter, "[RequestValidator.Validate] sso and sig are required")
	}

	if !v.signer.Verify(sso, sig) {
		return nil, errors.Wrap(ErrInvalidSignature, "[RequestValidator.Validate] signature mismatch")
	}

	pairs, err := v.codec.Decode(sso)
	if err != nil {
		return nil, errors.WithMessage(err, "[RequestValidator.Validate] decode")
	}

	nonce := pairs.Get(FieldNonce)
	rawReturnURL := pairs.Get(FieldReturnURL)
	if nonce == "" || rawReturnURL == "" {
		return nil, errors.Wrap(ErrMissingParameter, "[RequestValidator.Validate] nonce and return_sso_url are required")
	}

	returnURL, err := v.checkOrigin(rawReturnURL)
	if err != nil {
		return nil, err
	}

	extras := make(Pairs, 0, len(pairs))
	for _, pair := range pairs {
		if pair.Key == FieldNonce || pair.Key == FieldReturnURL {
			continue
		}
		extras = append(extras, pair)
	}

	return &Payload{
		Nonce:     nonce,
		ReturnURL: returnURL,
		Extras:    extras,
	}, nil
}

// checkOrigin pins the return URL to the configured forum origin
// (scheme + host + port). Anything else is an open-redirect attempt and
// is rejected regardless of signature validity.
func (v *RequestValidator) checkOrigin(rawReturnURL string) (*url.URL, error) {
	returnURL, err := url.Parse(rawReturnURL)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedPayload, "[RequestValidator.checkOrigin] return_sso_url is not a valid URL")
	}
	if !returnURL.IsAbs() || returnURL.Host == "" {
		return nil, errors.Wrap(ErrOpenRedirectRejected, "[RequestValidator.checkOrigin] return_sso_url must be absolute")
	}
	if returnURL.Scheme != v.forum.Scheme || returnURL.Host != v.forum.Host {
		return nil, errors.Wrap(ErrOpenRedirectRejected, "[RequestValidator.checkOrigin] return_sso_url origin mismatch")
	}
	return returnURL, nil
}
