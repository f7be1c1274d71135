package benchmark

import (
	"crypto/rand"
	"fmt"
	"testing"

	"github.com/smallyu/go-dht-stealth/internal/logging"
	"github.com/smallyu/go-dht-stealth/pkg/stealth"
)

func setup(b *testing.B, c stealth.Curve) (*stealth.KeyPair, *stealth.Generator, *stealth.Detector) {
	b.Helper()
	kp, err := stealth.GenerateKeyPair(c, rand.Reader)
	if err != nil {
		b.Fatal(err)
	}
	quiet := stealth.WithLogger(logging.Discard())
	return kp, stealth.NewGenerator(c, quiet), stealth.NewDetector(c, quiet)
}

func BenchmarkGenerate(b *testing.B) {
	for _, c := range []stealth.Curve{stealth.Secp256k1(), stealth.Ed25519()} {
		b.Run(c.Name(), func(b *testing.B) {
			kp, gen, _ := setup(b, c)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := gen.Generate(kp.Public()); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkScanRegisters(b *testing.B) {
	for _, c := range []stealth.Curve{stealth.Secp256k1(), stealth.Ed25519()} {
		b.Run(c.Name(), func(b *testing.B) {
			kp, gen, det := setup(b, c)
			p, _ := gen.Generate(kp.Public())
			regs, _ := p.Registers(c)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if !det.ScanRegisters(kp.Secret(), regs) {
					b.Fatal("not spendable")
				}
			}
		})
	}
}

func BenchmarkScan(b *testing.B) {
	c := stealth.Secp256k1()
	for _, n := range []int{16, 256} {
		b.Run(fmt.Sprintf("boxes=%d", n), func(b *testing.B) {
			kp, gen, det := setup(b, c)
			other, _ := stealth.GenerateKeyPair(c, rand.Reader)
			candidates := make([]stealth.Registers, n)
			for i := range candidates {
				p, _ := gen.Generate(other.Public())
				candidates[i], _ = p.Registers(c)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				det.Scan(kp.Secret(), candidates)
			}
		})
	}
}
