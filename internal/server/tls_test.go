package server

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// writeSelfSigned writes a PEM cert/key pair valid between notBefore and notAfter.
func writeSelfSigned(t *testing.T, notBefore, notAfter time.Time) (string, string) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	templ := &x509.Certificate{
		SerialNumber:          big.NewInt(time.Now().UnixNano()),
		Subject:               pkix.Name{CommonName: "localhost"},
		DNSNames:              []string{"localhost"},
		NotBefore:             notBefore,
		NotAfter:              notAfter,
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
	}
	der, err := x509.CreateCertificate(rand.Reader, templ, templ, &key.PublicKey, key)
	require.NoError(t, err)
	pkcs8, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)

	dir := t.TempDir()
	certPath := filepath.Join(dir, "cert.pem")
	keyPath := filepath.Join(dir, "key.pem")
	require.NoError(t, os.WriteFile(certPath, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), 0o600))
	require.NoError(t, os.WriteFile(keyPath, pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: pkcs8}), 0o600))
	return certPath, keyPath
}

func TestBuildFileTLS(t *testing.T) {
	cert, key := writeSelfSigned(t, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	conf, err := BuildFileTLS(cert, key)
	require.NoError(t, err)
	require.Len(t, conf.Certificates, 1)
	require.Contains(t, conf.NextProtos, "h2")
}

func TestBuildFileTLSExpired(t *testing.T) {
	cert, key := writeSelfSigned(t, time.Now().Add(-48*time.Hour), time.Now().Add(-24*time.Hour))
	_, err := BuildFileTLS(cert, key)
	require.ErrorContains(t, err, "certificate expired")
}

func TestBuildFileTLSMissing(t *testing.T) {
	_, err := BuildFileTLS("", "key.pem")
	require.Error(t, err)
}

func TestTLSFromConfig(t *testing.T) {
	v := viper.New()
	conf, challenge, err := TLSFromConfig(context.Background(), v)
	require.NoError(t, err)
	require.Nil(t, conf)
	require.Nil(t, challenge)

	cert, key := writeSelfSigned(t, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	v.Set("tls.cert_file", cert)
	v.Set("tls.key_file", key)
	conf, challenge, err = TLSFromConfig(context.Background(), v)
	require.NoError(t, err)
	require.NotNil(t, conf)
	require.Nil(t, challenge)
}

func TestWithProtos(t *testing.T) {
	require.Equal(t, []string{"acme-tls/1", "h2", "http/1.1"}, withProtos([]string{"acme-tls/1", "h2"}, "h2", "http/1.1"))
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	s, _, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
