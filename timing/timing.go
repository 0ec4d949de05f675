// Package timing measures one sign/verify round of a signer and
// extrapolates it to a whole block.
//
// Extrapolation is linear: every transaction is assumed to cost exactly one
// calibration signature, independent of message content and size. Schemes
// with data-dependent timing (rejection sampling in ML-DSA, for one) make
// this a modeling limitation of the estimate.
package timing

import (
	"crypto"
	"errors"
	"fmt"
	"time"

	"github.com/weiihann/pqblock/signer"
)

var (
	// ErrKeyGen wraps key generation failures.
	ErrKeyGen = errors.New("key generation failed")
	// ErrSignFailed wraps signing failures.
	ErrSignFailed = errors.New("signing failed")
	// ErrVerificationFailed reports a calibration signature that did not
	// verify, which means the signer is broken.
	ErrVerificationFailed = errors.New("signature verification failed")
	// ErrSignerPanic wraps a value recovered from a panicking signer call.
	ErrSignerPanic = errors.New("signer panicked")
)

// Sample is the wall-clock cost of one sign and one verify call.
type Sample struct {
	Sign   time.Duration
	Verify time.Duration
}

// Measurement is the result of a calibration call.
type Measurement struct {
	Sample    Sample
	Signature []byte
}

// Totals is a Sample scaled to TxCount transactions. It is kept in float
// seconds, so no transaction count can overflow it.
type Totals struct {
	TxCount       int
	SignSeconds   float64
	VerifySeconds float64
}

// Measure generates a key pair, then times exactly one Sign and one Verify
// of msg. Key generation is not part of the sample. A panic in any signer
// call is returned as that phase's error.
func Measure(s signer.Signer, msg []byte) (Measurement, error) {
	pub, priv, err := generateKey(s)
	if err != nil {
		return Measurement{}, fmt.Errorf("%w: %s: %w", ErrKeyGen, s.Name(), err)
	}

	signStart := time.Now()
	sig, err := sign(s, priv, msg)
	signElapsed := time.Since(signStart)

	if err != nil {
		return Measurement{}, fmt.Errorf("%w: %s: %w", ErrSignFailed, s.Name(), err)
	}

	verifyStart := time.Now()
	ok, err := verify(s, pub, msg, sig)
	verifyElapsed := time.Since(verifyStart)

	if err != nil {
		return Measurement{}, fmt.Errorf("%w: %s: %w", ErrVerificationFailed, s.Name(), err)
	}
	if !ok {
		return Measurement{}, fmt.Errorf("%w: %s", ErrVerificationFailed, s.Name())
	}

	return Measurement{
		Sample: Sample{
			Sign:   signElapsed,
			Verify: verifyElapsed,
		},
		Signature: sig,
	}, nil
}

// Extrapolate scales sample linearly to txCount transactions.
func Extrapolate(sample Sample, txCount int) Totals {
	n := float64(txCount)

	return Totals{
		TxCount:       txCount,
		SignSeconds:   sample.Sign.Seconds() * n,
		VerifySeconds: sample.Verify.Seconds() * n,
	}
}

func generateKey(s signer.Signer) (pub crypto.PublicKey, priv crypto.PrivateKey, err error) {
	defer recoverPanic(&err)

	return s.GenerateKey()
}

func sign(s signer.Signer, priv crypto.PrivateKey, msg []byte) (sig []byte, err error) {
	defer recoverPanic(&err)

	return s.Sign(priv, msg)
}

func verify(s signer.Signer, pub crypto.PublicKey, msg, sig []byte) (ok bool, err error) {
	defer recoverPanic(&err)

	return s.Verify(pub, msg, sig), nil
}

func recoverPanic(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %v", ErrSignerPanic, r)
	}
}
