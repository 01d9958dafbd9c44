package tlsutil

import (
	"crypto/tls"
	"crypto/x509"
	"os"
	"path/filepath"
	"testing"
)

func TestGenerateDevCerts(t *testing.T) {
	certs, err := GenerateDevCerts([]string{"localhost", "127.0.0.1"}, filepath.Join(t.TempDir(), "certs"))
	if err != nil {
		t.Fatalf("GenerateDevCerts: %v", err)
	}

	pair, err := tls.LoadX509KeyPair(certs.CertFile, certs.KeyFile)
	if err != nil {
		t.Fatalf("load key pair: %v", err)
	}
	leaf, err := x509.ParseCertificate(pair.Certificate[0])
	if err != nil {
		t.Fatalf("parse leaf: %v", err)
	}

	caPEM, err := os.ReadFile(certs.CAFile)
	if err != nil {
		t.Fatalf("read CA: %v", err)
	}
	roots := x509.NewCertPool()
	if !roots.AppendCertsFromPEM(caPEM) {
		t.Fatal("CA file holds no certificate")
	}

	for _, host := range []string{"localhost", "127.0.0.1"} {
		if _, err := leaf.Verify(x509.VerifyOptions{DNSName: host, Roots: roots}); err != nil {
			t.Errorf("verify for %s: %v", host, err)
		}
	}
}

func TestServerTLSConfig(t *testing.T) {
	certs, err := GenerateDevCerts([]string{"localhost"}, t.TempDir())
	if err != nil {
		t.Fatalf("GenerateDevCerts: %v", err)
	}

	creds, err := ServerTLSConfig(certs.CertFile, certs.KeyFile)
	if err != nil {
		t.Fatalf("ServerTLSConfig: %v", err)
	}
	if creds.Info().SecurityProtocol != "tls" {
		t.Errorf("protocol = %q, want tls", creds.Info().SecurityProtocol)
	}

	if _, err := ServerTLSConfig(certs.CertFile, filepath.Join(t.TempDir(), "missing.pem")); err == nil {
		t.Error("expected error for missing key file")
	}
}

func TestClientTLSConfig(t *testing.T) {
	certs, err := GenerateDevCerts([]string{"localhost"}, t.TempDir())
	if err != nil {
		t.Fatalf("GenerateDevCerts: %v", err)
	}

	if _, err := ClientTLSConfig(certs.CAFile, "localhost"); err != nil {
		t.Errorf("ClientTLSConfig with CA: %v", err)
	}
	if _, err := ClientTLSConfig("", "localhost"); err != nil {
		t.Errorf("ClientTLSConfig without CA: %v", err)
	}
	if _, err := ClientTLSConfig(certs.KeyFile, "localhost"); err == nil {
		t.Error("expected error when CA file holds no certificate")
	}
}
