// Package client drives one Minecraft Java Edition connection through its
// HANDSHAKE → LOGIN → CONFIGURATION phase transitions and hands the caller
// a transport.Conn left in the PLAY phase, ready for application code to
// read and write PLAY packets.
//
// Call flow mirrors BX-D-mini-RPC/client/client.go's single entry-point
// shape (dial → negotiate → return a ready handle) but the steps
// themselves are this protocol's login handshake rather than service
// discovery and load balancing, which have no equivalent here: there is
// exactly one server address, given directly by the caller.
package client

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"fmt"
	"net"

	"github.com/sirupsen/logrus"

	"mcjavaproto/packets"
	"mcjavaproto/proto"
	"mcjavaproto/registry"
	"mcjavaproto/transport"
)

// Client owns one connection's lifecycle from dial through the end of
// CONFIGURATION. Its zero value is not ready to use; build one with
// Dial.
type Client struct {
	conn *transport.Conn
	log  *logrus.Entry
}

// Options configures a connection attempt.
type Options struct {
	ServerAddress   string
	ProtocolVersion int32
	Username        string
	Logger          *logrus.Logger
}

// Dial opens a TCP connection to opts.ServerAddress, sends the HANDSHAKE
// and LOGIN-phase packets, and returns once the server has acknowledged
// login and the connection has moved to the CONFIGURATION phase
// (spec.md §4.6, §8 E1–E2). A LoginEncryptionRequest along the way is
// answered with a freshly generated shared secret, RSA-wrapped against the
// server's public key — session-service (Mojang) authentication of that
// secret is the explicit Non-goal; this dials offline-mode servers or
// servers that don't check the session service.
func Dial(opts Options) (*Client, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	logger.WithField("server", opts.ServerAddress).Info("dialing")
	netConn, err := net.Dial("tcp", opts.ServerAddress)
	if err != nil {
		return nil, fmt.Errorf("client: dial %s: %w", opts.ServerAddress, err)
	}

	return dialOverConn(netConn, opts)
}

// dialOverConn runs the HANDSHAKE/LOGIN negotiation over an
// already-established connection. Split out from Dial so tests can supply
// a net.Pipe instead of a real TCP dial.
func dialOverConn(netConn net.Conn, opts Options) (*Client, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	log := logger.WithField("server", opts.ServerAddress)

	host, port, err := splitHostPort(opts.ServerAddress)
	if err != nil {
		return nil, err
	}

	conn := transport.NewConn(netConn, registry.Global)
	c := &Client{conn: conn, log: log}

	if err := conn.WritePacket(packets.Handshake{
		ProtocolVersion: opts.ProtocolVersion,
		ServerAddress:   host,
		ServerPort:      port,
		NextState:       2, // LOGIN
	}); err != nil {
		netConn.Close()
		return nil, fmt.Errorf("client: handshake: %w", err)
	}
	conn.SetPhase(proto.Login)

	if err := conn.WritePacket(packets.LoginStart{Username: opts.Username}); err != nil {
		netConn.Close()
		return nil, fmt.Errorf("client: login start: %w", err)
	}

	if err := c.runLoginSequence(); err != nil {
		netConn.Close()
		return nil, err
	}

	return c, nil
}

// runLoginSequence reads clientbound LOGIN packets until LoginSuccess,
// handling SetCompression and plugin requests along the way, then sends
// LoginAcknowledged and transitions to CONFIGURATION.
func (c *Client) runLoginSequence() error {
	for {
		pkt, err := c.conn.ReadPacket()
		if err != nil {
			return fmt.Errorf("client: login: %w", err)
		}

		switch p := pkt.(type) {
		case packets.LoginDisconnect:
			return fmt.Errorf("client: login: server disconnected: %s", p.Reason.Text)

		case packets.LoginSetCompression:
			c.log.WithField("threshold", p.Threshold).Debug("compression enabled")
			c.conn.EnableCompression(p.Threshold)

		case packets.LoginEncryptionRequest:
			if err := c.respondToEncryptionRequest(p); err != nil {
				return fmt.Errorf("client: encryption: %w", err)
			}
			c.log.Debug("encryption enabled")

		case packets.LoginPluginRequest:
			if err := c.conn.WritePacket(packets.LoginPluginResponse{
				MessageID:  p.MessageID,
				Successful: false,
			}); err != nil {
				return fmt.Errorf("client: login plugin response: %w", err)
			}

		case packets.LoginSuccess:
			c.log.WithFields(logrus.Fields{"uuid": p.UUID.String(), "username": p.Username}).Info("logged in")
			if err := c.conn.WritePacket(packets.LoginAcknowledged{}); err != nil {
				return fmt.Errorf("client: login acknowledged: %w", err)
			}
			c.conn.SetPhase(proto.Configuration)
			return nil

		default:
			return fmt.Errorf("client: login: unexpected packet %T", pkt)
		}
	}
}

// respondToEncryptionRequest generates a random 16-byte shared secret,
// RSA/PKCS#1v1.5-wraps it and the server's verify token against the DER
// SubjectPublicKeyInfo carried in req, sends the response, and turns on
// AES-CFB8 on the underlying connection using the plaintext secret.
func (c *Client) respondToEncryptionRequest(req packets.LoginEncryptionRequest) error {
	pub, err := x509.ParsePKIXPublicKey(req.PublicKey)
	if err != nil {
		return fmt.Errorf("parsing server public key: %w", err)
	}
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return fmt.Errorf("server public key is %T, not RSA", pub)
	}

	secret := make([]byte, 16)
	if _, err := rand.Read(secret); err != nil {
		return fmt.Errorf("generating shared secret: %w", err)
	}

	encSecret, err := rsa.EncryptPKCS1v15(rand.Reader, rsaPub, secret)
	if err != nil {
		return fmt.Errorf("wrapping shared secret: %w", err)
	}
	encToken, err := rsa.EncryptPKCS1v15(rand.Reader, rsaPub, req.VerifyToken)
	if err != nil {
		return fmt.Errorf("wrapping verify token: %w", err)
	}

	if err := c.conn.WritePacket(packets.LoginEncryptionResponse{
		SharedSecret: encSecret,
		VerifyToken:  encToken,
	}); err != nil {
		return fmt.Errorf("sending encryption response: %w", err)
	}

	return c.conn.EnableEncryption(secret)
}

// RunConfiguration drains CONFIGURATION-phase packets, answering
// KeepAlive and Ping and acknowledging FinishConfiguration, until the
// server moves the connection to PLAY (spec.md §8 E3). The caller
// supplies onPacket to observe every other packet (registry data,
// resource packs, and so on) before RunConfiguration finishes.
func (c *Client) RunConfiguration(onPacket func(proto.Packet)) error {
	for {
		pkt, err := c.conn.ReadPacket()
		if err != nil {
			return fmt.Errorf("client: configuration: %w", err)
		}

		switch p := pkt.(type) {
		case packets.ConfigurationKeepAlive:
			if err := c.conn.WritePacket(packets.ConfigurationKeepAliveResponse{KeepAliveID: p.KeepAliveID}); err != nil {
				return fmt.Errorf("client: configuration keep alive: %w", err)
			}

		case packets.ConfigurationPing:
			if err := c.conn.WritePacket(packets.ConfigurationPong{Payload: p.Payload}); err != nil {
				return fmt.Errorf("client: configuration pong: %w", err)
			}

		case packets.FinishConfiguration:
			if err := c.conn.WritePacket(packets.AcknowledgeFinishConfiguration{}); err != nil {
				return fmt.Errorf("client: acknowledge finish configuration: %w", err)
			}
			c.conn.SetPhase(proto.Play)
			c.log.Info("entered play phase")
			return nil

		default:
			if onPacket != nil {
				onPacket(pkt)
			}
		}
	}
}

// Conn returns the underlying framed connection, for PLAY-phase use once
// RunConfiguration has returned.
func (c *Client) Conn() *transport.Conn {
	return c.conn
}

// Close closes the underlying TCP connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func splitHostPort(addr string) (string, uint16, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, fmt.Errorf("client: invalid server address %q: %w", addr, err)
	}
	var port uint16
	if _, err := fmt.Sscanf(portStr, "%d", &port); err != nil {
		return "", 0, fmt.Errorf("client: invalid port in %q: %w", addr, err)
	}
	return host, port, nil
}
