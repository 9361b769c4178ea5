package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	coremetrics "github.com/kilianp07/quote-genie/core/metrics"
	"github.com/kilianp07/quote-genie/core/model"
)

// TestPublisherIntegration publishes a quote through a real Mosquitto broker.
func TestPublisherIntegration(t *testing.T) {
	if os.Getenv("DOCKER_AVAILABLE") != "true" && os.Getenv("DOCKER_AVAILABLE") != "1" {
		t.Skip("docker not available")
	}
	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "eclipse-mosquitto:1.6",
		ExposedPorts: []string{"1883/tcp"},
		WaitingFor:   wait.ForListeningPort("1883/tcp"),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, container.Terminate(ctx))
	}()

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "1883")
	require.NoError(t, err)
	brokerURL := fmt.Sprintf("tcp://%s:%s", host, port.Port())

	sub := paho.NewClient(paho.NewClientOptions().AddBroker(brokerURL).SetClientID("sub"))
	var connectErr error
	for i := 0; i < 5; i++ {
		tok := sub.Connect()
		tok.Wait()
		if connectErr = tok.Error(); connectErr == nil {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	require.NoError(t, connectErr)
	defer sub.Disconnect(250)

	msgCh := make(chan []byte, 1)
	tok := sub.Subscribe("it/quotes/priced", 1, func(_ paho.Client, m paho.Message) {
		msgCh <- m.Payload()
	})
	tok.Wait()
	require.NoError(t, tok.Error())

	pub, err := NewPublisher(Config{Broker: brokerURL, ClientID: "pub", TopicPrefix: "it", QoS: 1})
	require.NoError(t, err)
	defer pub.Disconnect()

	require.NoError(t, pub.RecordQuote(coremetrics.QuoteEvent{
		RequestID: "abc", Source: model.SourceModel, Price: 99.5, Time: time.Now(),
	}))

	select {
	case raw := <-msgCh:
		var msg QuoteMessage
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, "abc", msg.RequestID)
		assert.Equal(t, 99.5, msg.Price)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for message")
	}
}
