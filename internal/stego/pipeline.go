// Package stego ties the envelope engine, the framing protocol and a carrier
// codec into the two pipeline directions:
//
//	Seal: plaintext -> Encrypt -> Frame -> capacity check -> Embed
//	Open: Extract -> Unframe -> ParseEnvelope -> Decrypt -> plaintext
//
// Both functions are pure transformations of their arguments and may run
// concurrently for distinct carriers.
package stego

import (
	"fmt"

	"github.com/PolarWolf314/stegvault/internal/capacity"
	"github.com/PolarWolf314/stegvault/internal/carrier"
	"github.com/PolarWolf314/stegvault/internal/envelope"
	"github.com/PolarWolf314/stegvault/internal/framing"
	"github.com/PolarWolf314/stegvault/internal/keys"
)

// Seal encrypts payload under key and hides it in carrierBytes. The capacity
// report is returned even when the payload does not fit, alongside a
// *errors.CapacityError; in that case no output is produced.
func Seal(engine *envelope.Engine, key keys.Key, codec carrier.Codec, carrierBytes, payload []byte) ([]byte, capacity.Report, error) {
	env, err := engine.Encrypt(key, payload)
	if err != nil {
		return nil, capacity.Report{}, err
	}

	framed, err := framing.Frame(env.Bytes())
	if err != nil {
		return nil, capacity.Report{}, err
	}

	report, err := codec.CanEmbed(carrierBytes, len(framed))
	if err != nil {
		return nil, capacity.Report{}, err
	}
	if err := report.Err(); err != nil {
		return nil, report, err
	}

	out, err := codec.Embed(carrierBytes, framed)
	if err != nil {
		return nil, report, err
	}
	return out, report, nil
}

// Open recovers the payload hidden in carrierBytes. A carrier that never held
// a payload fails with a frame error or errors.ErrAuthenticationFailed.
func Open(engine *envelope.Engine, key keys.Key, codec carrier.Codec, carrierBytes []byte) ([]byte, error) {
	extracted, err := codec.Extract(carrierBytes)
	if err != nil {
		return nil, err
	}

	unframed, err := framing.Unframe(extracted)
	if err != nil {
		return nil, err
	}

	env, err := envelope.ParseEnvelope(unframed.Envelope)
	if err != nil {
		return nil, err
	}

	plaintext, err := engine.Decrypt(key, env)
	if err != nil {
		return nil, err
	}
	return plaintext, nil
}

// Required reports whether a payload of payloadLen bytes would fit, without
// encrypting anything.
func Required(codec carrier.Codec, carrierBytes []byte, payloadLen int) (capacity.Report, error) {
	if payloadLen < 0 {
		return capacity.Report{}, fmt.Errorf("negative payload length %d", payloadLen)
	}
	return codec.CanEmbed(carrierBytes, framing.FramedLen(envelope.SealedLen(payloadLen)))
}

// MaxPayload is the largest plaintext, in bytes, the carrier can hold.
func MaxPayload(codec carrier.Codec, carrierBytes []byte) (int64, error) {
	available, unit, err := codec.Capacity(carrierBytes)
	if err != nil {
		return 0, err
	}
	n := capacity.PayloadBytes(available, unit) - framing.HeaderSize - envelope.Overhead
	if n < 0 {
		n = 0
	}
	return n, nil
}
