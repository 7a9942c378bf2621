// Command tuplekeycheck fans a configurable number of goroutines out over
// randomly generated values and confirms that Encode/Decode/Compare agree
// with each other under concurrent, disjoint use, per spec §5's
// concurrency-safety claim.
package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/chaisql/tuplekey"
	"github.com/chaisql/tuplekey/value"
)

func main() {
	workers := flag.Int("workers", 8, "number of concurrent workers")
	iterations := flag.Int("iterations", 10000, "round trips per worker")
	seed := flag.Int64("seed", 1, "PRNG seed")
	flag.Parse()

	if err := run(*workers, *iterations, *seed); err != nil {
		log.Fatalf("error: %v", err)
	}
	log.Printf("ok: %d workers x %d iterations, no property violations", *workers, *iterations)
}

func run(workers, iterations int, seed int64) error {
	g, _ := errgroup.WithContext(context.Background())

	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed + int64(w)))
			for i := 0; i < iterations; i++ {
				a := randomValue(rng, 0)
				b := randomValue(rng, 0)
				if err := checkPair(a, b); err != nil {
					return errors.Wrapf(err, "worker %d iteration %d", w, i)
				}
			}
			return nil
		})
	}

	return g.Wait()
}

// checkPair verifies round-trip and order-preservation for a single pair of
// generated values.
func checkPair(a, b value.Value) error {
	encA, err := tuplekey.Encode(a)
	if err != nil {
		return errors.Wrap(err, "encode a")
	}
	encB, err := tuplekey.Encode(b)
	if err != nil {
		return errors.Wrap(err, "encode b")
	}

	decA, err := tuplekey.Decode(encA)
	if err != nil {
		return errors.Wrap(err, "decode a")
	}
	if value.Compare(a, decA) != 0 {
		return errors.Newf("round trip mismatch: %v != %v", a, decA)
	}

	wantSign := value.Compare(a, b)
	gotSign := tuplekey.Compare(encA, encB)
	if sign(wantSign) != sign(gotSign) {
		return errors.Newf("order mismatch: value compare=%d, byte compare=%d", wantSign, gotSign)
	}

	return nil
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// randomValue generates a value of any variant except MAP and HIGH,
// recursing into lists and sets up to a small bounded depth.
func randomValue(rng *rand.Rand, depth int) value.Value {
	const maxDepth = 3

	choices := []func() value.Value{
		func() value.Value { return value.NewBottom() },
		func() value.Value { return value.NewNull() },
		func() value.Value { return value.NewBool(rng.Intn(2) == 0) },
		func() value.Value { return value.NewNegInfinity() },
		func() value.Value { return value.NewPosInfinity() },
		func() value.Value {
			v, _ := value.NewNumber(rng.NormFloat64() * rng.Float64() * 1e6)
			return v
		},
		func() value.Value {
			v, _ := value.NewDate(randomTime(rng))
			return v
		},
		func() value.Value { return value.NewBytes(randomBytes(rng)) },
		func() value.Value {
			v, _ := value.NewText(randomText(rng))
			return v
		},
		func() value.Value { return value.NewCode(randomText(rng)) },
	}

	if depth < maxDepth {
		choices = append(choices,
			func() value.Value { return randomList(rng, depth) },
			func() value.Value { return randomSet(rng, depth) },
		)
	}

	return choices[rng.Intn(len(choices))]()
}

func randomList(rng *rand.Rand, depth int) value.Value {
	n := rng.Intn(4)
	elems := make([]value.Value, n)
	for i := range elems {
		elems[i] = randomValue(rng, depth+1)
	}
	return value.NewList(elems)
}

func randomSet(rng *rand.Rand, depth int) value.Value {
	n := rng.Intn(4)
	elems := make([]value.Value, n)
	for i := range elems {
		elems[i] = randomValue(rng, depth+1)
	}
	return value.NewSet(elems)
}

func randomBytes(rng *rand.Rand) []byte {
	n := rng.Intn(8)
	b := make([]byte, n)
	rng.Read(b)
	return b
}

var alphabet = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 √")

func randomText(rng *rand.Rand) string {
	n := rng.Intn(8)
	runes := make([]rune, n)
	for i := range runes {
		runes[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(runes)
}

func randomTime(rng *rand.Rand) time.Time {
	ms := rng.Int63n(4_000_000_000_000) - 2_000_000_000_000
	return time.UnixMilli(ms).UTC()
}
