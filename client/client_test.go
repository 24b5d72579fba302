package client

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	"mcjavaproto/packets"
	"mcjavaproto/proto"
	"mcjavaproto/registry"
	"mcjavaproto/transport"
	"mcjavaproto/types"
)

// fakeServer performs just enough of the LOGIN/CONFIGURATION phases on
// serverSide to exercise Dial's state machine.
func fakeServer(t *testing.T, serverSide net.Conn) {
	t.Helper()
	conn := transport.NewConn(serverSide, registry.Global)

	pkt, err := conn.ReadPacket()
	require.NoError(t, err)
	_, ok := pkt.(packets.Handshake)
	require.True(t, ok, "expected Handshake, got %T", pkt)
	conn.SetPhase(proto.Login)

	pkt, err = conn.ReadPacket()
	require.NoError(t, err)
	start, ok := pkt.(packets.LoginStart)
	require.True(t, ok, "expected LoginStart, got %T", pkt)

	id, err := types.ParseUUID("00112233-4455-6677-8899-aabbccddeeff")
	require.NoError(t, err)
	require.NoError(t, conn.WritePacket(packets.LoginSuccess{UUID: id, Username: start.Username}))

	ack, err := conn.ReadPacket()
	require.NoError(t, err)
	_, ok = ack.(packets.LoginAcknowledged)
	require.True(t, ok, "expected LoginAcknowledged, got %T", ack)
	conn.SetPhase(proto.Configuration)

	require.NoError(t, conn.WritePacket(packets.FinishConfiguration{}))

	final, err := conn.ReadPacket()
	require.NoError(t, err)
	_, ok = final.(packets.AcknowledgeFinishConfiguration)
	require.True(t, ok, "expected AcknowledgeFinishConfiguration, got %T", final)
}

// fakeServerWithEncryption is fakeServer plus a LoginEncryptionRequest
// round trip in the middle of LOGIN, exercising the RSA/AES-CFB8 path in
// respondToEncryptionRequest.
func fakeServerWithEncryption(t *testing.T, serverSide net.Conn) {
	t.Helper()
	conn := transport.NewConn(serverSide, registry.Global)

	pkt, err := conn.ReadPacket()
	require.NoError(t, err)
	_, ok := pkt.(packets.Handshake)
	require.True(t, ok, "expected Handshake, got %T", pkt)
	conn.SetPhase(proto.Login)

	pkt, err = conn.ReadPacket()
	require.NoError(t, err)
	start, ok := pkt.(packets.LoginStart)
	require.True(t, ok, "expected LoginStart, got %T", pkt)

	priv, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	pubDER, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)
	verifyToken := []byte{1, 2, 3, 4}

	require.NoError(t, conn.WritePacket(packets.LoginEncryptionRequest{
		ServerID:    "",
		PublicKey:   pubDER,
		VerifyToken: verifyToken,
	}))

	pkt, err = conn.ReadPacket()
	require.NoError(t, err)
	resp, ok := pkt.(packets.LoginEncryptionResponse)
	require.True(t, ok, "expected LoginEncryptionResponse, got %T", pkt)

	secret, err := rsa.DecryptPKCS1v15(rand.Reader, priv, resp.SharedSecret)
	require.NoError(t, err)
	token, err := rsa.DecryptPKCS1v15(rand.Reader, priv, resp.VerifyToken)
	require.NoError(t, err)
	require.Equal(t, verifyToken, token)
	require.NoError(t, conn.EnableEncryption(secret))

	id, err := types.ParseUUID("00112233-4455-6677-8899-aabbccddeeff")
	require.NoError(t, err)
	require.NoError(t, conn.WritePacket(packets.LoginSuccess{UUID: id, Username: start.Username}))

	ack, err := conn.ReadPacket()
	require.NoError(t, err)
	_, ok = ack.(packets.LoginAcknowledged)
	require.True(t, ok, "expected LoginAcknowledged, got %T", ack)
	conn.SetPhase(proto.Configuration)

	require.NoError(t, conn.WritePacket(packets.FinishConfiguration{}))

	final, err := conn.ReadPacket()
	require.NoError(t, err)
	_, ok = final.(packets.AcknowledgeFinishConfiguration)
	require.True(t, ok, "expected AcknowledgeFinishConfiguration, got %T", final)
}

func TestDialHandlesEncryptionRequest(t *testing.T) {
	serverSide, clientSide := net.Pipe()
	defer serverSide.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		fakeServerWithEncryption(t, serverSide)
	}()

	c, err := dialOverConn(clientSide, Options{
		ServerAddress:   "localhost:25565",
		ProtocolVersion: 765,
		Username:        "Notch",
	})
	require.NoError(t, err)

	require.NoError(t, c.RunConfiguration(nil))
	require.Equal(t, proto.Play, c.Conn().Phase())

	<-done
}

func TestDialAndRunConfigurationReachesPlay(t *testing.T) {
	serverSide, clientSide := net.Pipe()
	defer serverSide.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		fakeServer(t, serverSide)
	}()

	c, err := dialOverConn(clientSide, Options{
		ServerAddress:   "localhost:25565",
		ProtocolVersion: 765,
		Username:        "Notch",
	})
	require.NoError(t, err)

	require.NoError(t, c.RunConfiguration(nil))
	require.Equal(t, proto.Play, c.Conn().Phase())

	<-done
}
