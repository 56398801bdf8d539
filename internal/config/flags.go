package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-encryption-key passphrase for at-rest secret encryption
//	-token-issuer token issuer name
//	-access-token-ttl access token lifetime (e.g., "1h", "30m")
//	-refresh-token-ttl refresh token lifetime (e.g., "24h")
//	-reset-token-ttl password reset token lifetime (e.g., "60m")
//	-password-validity-days password validity window in days
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-smtp-address SMTP relay address host:port
//	-mail-from sender address for outbound mail
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var encryptionKey string
	var tokenIssuer string
	var accessTokenTTL time.Duration
	var refreshTokenTTL time.Duration
	var resetTokenTTL time.Duration
	var passwordValidityDays int
	var requestTimeout time.Duration
	var smtpAddress string
	var mailFrom string

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&encryptionKey, "encryption-key", "", "Passphrase for at-rest secret encryption")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&accessTokenTTL, "access-token-ttl", 0, "Access token lifetime (e.g., 1h, 30m)")
	flag.DurationVar(&refreshTokenTTL, "refresh-token-ttl", 0, "Refresh token lifetime (e.g., 24h)")
	flag.DurationVar(&resetTokenTTL, "reset-token-ttl", 0, "Password reset token lifetime (e.g., 60m)")
	flag.IntVar(&passwordValidityDays, "password-validity-days", 0, "Password validity window in days")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&smtpAddress, "smtp-address", "", "SMTP relay address host:port")
	flag.StringVar(&mailFrom, "mail-from", "", "Sender address for outbound mail")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			EncryptionKey:        encryptionKey,
			TokenIssuer:          tokenIssuer,
			AccessTokenTTL:       accessTokenTTL,
			RefreshTokenTTL:      refreshTokenTTL,
			PasswordValidityDays: passwordValidityDays,
			ResetTokenTTL:        resetTokenTTL,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Mail: Mail{
			SMTPAddress: smtpAddress,
			From:        mailFrom,
		},
		Workers:      Workers{},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect host")
		}
	}

	a.Host = host
	a.Port = port

	return nil
}
