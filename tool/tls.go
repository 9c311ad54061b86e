package tool

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"net"
	"time"

	"github.com/moyoez/statusboard/types"
)

// GetOrCreateTLSCertFromConfig loads existing TLS certificate from config or generates a new one.
// Certificate content is stored in config's CertPEM and KeyPEM fields; generated reports whether
// the caller should persist the config.
func GetOrCreateTLSCertFromConfig(cfg *types.AppConfig) (certDER []byte, keyDER []byte, generated bool, err error) {
	if cfg.CertPEM != "" && cfg.KeyPEM != "" {
		certDER, keyDER, err = loadTLSCertFromPEM(cfg.CertPEM, cfg.KeyPEM)
		if err == nil {
			DefaultLogger.Infof("Loaded existing TLS certificate from config")
			return certDER, keyDER, false, nil
		}
		DefaultLogger.Warnf("Certificate in config is invalid or expired: %v, regenerating...", err)
	}

	certDER, keyDER, err = generateTLSCert()
	if err != nil {
		return nil, nil, false, err
	}

	cfg.CertPEM = string(pem.EncodeToMemory(&pem.Block{
		Type:  "CERTIFICATE",
		Bytes: certDER,
	}))
	cfg.KeyPEM = string(pem.EncodeToMemory(&pem.Block{
		Type:  "EC PRIVATE KEY",
		Bytes: keyDER,
	}))

	DefaultLogger.Infof("TLS certificate generated and stored in config")
	return certDER, keyDER, true, nil
}

// LoadTLSConfig builds a server tls.Config from the certificate in cfg, generating one if needed.
// A generated certificate is saved to the config file; nothing else in cfg is.
func LoadTLSConfig(cfg *types.AppConfig) (*tls.Config, error) {
	certBytes, keyBytes, generated, err := GetOrCreateTLSCertFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get TLS certificate: %w", err)
	}
	if generated {
		if err := PersistTLSCert(cfg.CertPEM, cfg.KeyPEM); err != nil {
			DefaultLogger.Warnf("Certificate will be regenerated on next start: %v", err)
		}
	}

	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certBytes})
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyBytes})

	cert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}
	return &tls.Config{Certificates: []tls.Certificate{cert}}, nil
}

// loadTLSCertFromPEM loads TLS certificate and key from PEM strings.
// If certificate is expired, returns error.
func loadTLSCertFromPEM(certPEMStr, keyPEMStr string) (certDER []byte, keyDER []byte, err error) {
	certBlock, _ := pem.Decode([]byte(certPEMStr))
	if certBlock == nil {
		return nil, nil, fmt.Errorf("failed to decode certificate PEM")
	}

	keyBlock, _ := pem.Decode([]byte(keyPEMStr))
	if keyBlock == nil {
		return nil, nil, fmt.Errorf("failed to decode key PEM")
	}

	cert, err := x509.ParseCertificate(certBlock.Bytes)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse certificate: %w", err)
	}

	if time.Now().After(cert.NotAfter) {
		return nil, nil, fmt.Errorf("certificate has expired")
	}

	return certBlock.Bytes, keyBlock.Bytes, nil
}

// generateTLSCert generates a new self-signed TLS certificate for localhost.
func generateTLSCert() (certDER []byte, keyDER []byte, err error) {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate ECDSA private key: %w", err)
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 62))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate serial number: %w", err)
	}

	cert := x509.Certificate{
		SerialNumber: serial,
		Subject: pkix.Name{
			CommonName:   "statusboard-localCert",
			Organization: []string{"statusboard"},
		},
		DNSNames:    []string{"localhost"},
		IPAddresses: []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback},
		NotBefore:   time.Now(),
		NotAfter:    time.Now().Add(time.Hour * 24 * 365), // 1 year validity
		KeyUsage:    x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}

	certBytes, err := x509.CreateCertificate(rand.Reader, &cert, &cert, &privateKey.PublicKey, privateKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create certificate: %w", err)
	}

	privateKeyBytes, err := x509.MarshalECPrivateKey(privateKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal ECDSA private key: %w", err)
	}

	return certBytes, privateKeyBytes, nil
}
