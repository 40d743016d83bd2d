package certs

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"time"
)

var (
	// ErrNoCertificate is returned when the certificate file holds no CERTIFICATE block.
	ErrNoCertificate = errors.New("failed to parse certificate PEM")
	// ErrExpired is returned by Check for a certificate past its NotAfter.
	ErrExpired = errors.New("certificate expired")
)

// CertManager manages the TLS certificate the server listens with.
type CertManager struct {
	certFile string
	keyFile  string
}

// NewCertManager creates a CertManager for a PEM certificate and key pair.
func NewCertManager(certFile, keyFile string) *CertManager {
	return &CertManager{certFile: certFile, keyFile: keyFile}
}

// LoadCertificate parses the leaf certificate, the first CERTIFICATE block of the file.
func (cm *CertManager) LoadCertificate() (*x509.Certificate, error) {
	data, err := os.ReadFile(cm.certFile)
	if err != nil {
		return nil, err
	}
	for {
		var block *pem.Block
		block, data = pem.Decode(data)
		if block == nil {
			return nil, ErrNoCertificate
		}
		if block.Type == "CERTIFICATE" {
			return x509.ParseCertificate(block.Bytes)
		}
	}
}

// IsExpired checks if a certificate is expired at now.
func IsExpired(cert *x509.Certificate, now time.Time) bool {
	return cert.NotAfter.Before(now)
}

// ExpiresWithin reports whether cert expires before now+d.
func ExpiresWithin(cert *x509.Certificate, d time.Duration, now time.Time) bool {
	return cert.NotAfter.Before(now.Add(d))
}

// Check loads the certificate and fails if it has expired. The returned
// certificate lets the caller warn about upcoming expiry.
func (cm *CertManager) Check(now time.Time) (*x509.Certificate, error) {
	cert, err := cm.LoadCertificate()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", cm.certFile, err)
	}
	if IsExpired(cert, now) {
		return cert, fmt.Errorf("%s: %w on %s", cm.certFile, ErrExpired, cert.NotAfter.Format(time.RFC3339))
	}
	return cert, nil
}

// TLSConfig loads the key pair into a server configuration.
func (cm *CertManager) TLSConfig() (*tls.Config, error) {
	pair, err := tls.LoadX509KeyPair(cm.certFile, cm.keyFile)
	if err != nil {
		return nil, fmt.Errorf("load key pair: %w", err)
	}
	return &tls.Config{
		Certificates: []tls.Certificate{pair},
		MinVersion:   tls.VersionTLS12,
	}, nil
}
