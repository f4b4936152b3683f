package mqttctrl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/Agrid-Dev/heizlast/internal/building"
	"github.com/Agrid-Dev/heizlast/internal/heatload"
	"github.com/Agrid-Dev/heizlast/internal/logging"
	"github.com/Agrid-Dev/heizlast/internal/metrics"
	"github.com/Agrid-Dev/heizlast/internal/ports"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type Config struct {
	// Identity
	DeviceID string

	// MQTT connection
	BrokerURL string
	ClientID  string

	// Topics
	BaseTopic string

	// Behavior
	QoS             byte
	RetainSnapshot  bool
	PublishInterval time.Duration

	Username string
	Password string
}

type Controller struct {
	svc     ports.BuildingService
	cfg     Config
	metrics *metrics.Metrics
	log     *slog.Logger

	client mqtt.Client
}

func New(svc ports.BuildingService, cfg Config, m *metrics.Metrics, log *slog.Logger) (*Controller, error) {
	// ---- defaults ----

	if cfg.BrokerURL == "" {
		cfg.BrokerURL = "tcp://localhost:1883"
	}

	if cfg.DeviceID == "" {
		return nil, errors.New("mqtt: DeviceID is required")
	}
	if cfg.BaseTopic == "" {
		cfg.BaseTopic = "heizlast/" + cfg.DeviceID
	}
	if cfg.ClientID == "" {
		cfg.ClientID = "heizlast-" + cfg.DeviceID
	}
	if cfg.PublishInterval <= 0 {
		cfg.PublishInterval = 1 * time.Second
	}
	if cfg.QoS > 1 {
		return nil, errors.New("mqtt: QoS must be 0 or 1")
	}
	if log == nil {
		log = logging.NewNop()
	}
	return &Controller{
		svc:     svc,
		cfg:     cfg,
		metrics: m,
		log:     log.With("controller", "mqtt"),
	}, nil
}

func (c *Controller) Run(ctx context.Context) error {
	opts := mqtt.NewClientOptions().
		AddBroker(c.cfg.BrokerURL).
		SetClientID(c.cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(2 * time.Second)

	if c.cfg.Username != "" {
		opts.SetUsername(c.cfg.Username)
		opts.SetPassword(c.cfg.Password)
	}

	// Subscribe when connected/reconnected.
	opts.OnConnect = func(cl mqtt.Client) {
		filters := map[string]byte{
			c.topic("set/+"):  c.cfg.QoS,
			c.topic("calc/+"): c.cfg.QoS,
		}
		token := cl.SubscribeMultiple(filters, c.onMessage)
		token.Wait()
		if err := token.Error(); err != nil {
			c.log.Error("subscribe failed", "error", err)
		}
	}

	c.client = mqtt.NewClient(opts)
	tok := c.client.Connect()
	tok.Wait()
	if err := tok.Error(); err != nil {
		return fmt.Errorf("mqtt connect: %w", err)
	}
	c.log.Info("mqtt connected", "broker", c.cfg.BrokerURL, "base_topic", c.cfg.BaseTopic)

	// Publish loop: publish snapshot on interval, and only when changed.
	ticker := time.NewTicker(c.cfg.PublishInterval)
	defer ticker.Stop()

	last := c.svc.Get()
	c.publishSnapshot()

	for {
		select {
		case <-ctx.Done():
			c.client.Disconnect(250)
			return ctx.Err()

		case <-ticker.C:
			cur := c.svc.Get()
			if !reflect.DeepEqual(cur, last) {
				c.publishSnapshot()
				last = cur
			}
		}
	}
}

func (c *Controller) publishSnapshot() {
	c.publishJSON("snapshot", c.cfg.RetainSnapshot, c.svc.Get().Document())
}

func (c *Controller) publishJSON(suffix string, retain bool, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		c.log.Error("marshal failed", "topic", suffix, "error", err)
		return
	}
	c.client.Publish(c.topic(suffix), c.cfg.QoS, retain, b)
}

type errorDTO struct {
	Error string `json:"error"`
}

// Command payload format: {"value": ...}
type valueReq[T any] struct {
	Value *T `json:"value"`
}

func (c *Controller) onMessage(_ mqtt.Client, msg mqtt.Message) {
	t := msg.Topic()
	base := strings.TrimRight(c.cfg.BaseTopic, "/") + "/"
	if !strings.HasPrefix(t, base) {
		return
	}
	rest := strings.TrimPrefix(t, base)

	switch {
	case strings.HasPrefix(rest, "set/"):
		c.handleSet(strings.TrimPrefix(rest, "set/"), msg.Payload())
	case strings.HasPrefix(rest, "calc/"):
		c.handleCalc(strings.TrimPrefix(rest, "calc/"), msg.Payload())
	}
}

// handleSet applies <base>/set/<field>. Invalid commands are logged and dropped.
func (c *Controller) handleSet(field string, payload []byte) {
	var err error
	switch field {
	case "ridge_axis":
		var s string
		if s, err = decodeValueStrict[string](payload); err != nil {
			break
		}
		var axis heatload.RidgeAxis
		if axis, err = heatload.ParseRidgeAxis(s); err != nil {
			break
		}
		err = c.svc.SetRidgeAxis(axis)

	case "preset":
		var name string
		if name, err = decodeValueStrict[string](payload); err != nil {
			break
		}
		c.svc.ApplyPreset(name)

	default:
		var f building.Field
		if f, err = building.ParseField(field); err != nil {
			break
		}
		var v float64
		if v, err = decodeValueStrict[float64](payload); err != nil {
			break
		}
		err = c.svc.Set(f, v)
	}
	if err != nil {
		c.log.Warn("set rejected", "field", field, "error", err)
	}
}

// handleCalc runs a stateless calculation and answers on <base>/result/<kind>.
func (c *Controller) handleCalc(kind string, payload []byte) {
	switch kind {
	case metrics.KindSimple:
		in := heatload.DefaultSimpleInput()
		if err := decodeStrict(payload, &in); err != nil {
			c.replyErr(kind, err)
			return
		}
		res, err := heatload.Simple(in)
		if err != nil {
			c.metrics.Reject(kind)
			c.replyErr(kind, err)
			return
		}
		c.metrics.Observe(kind, res.PowerKW)
		c.publishJSON("result/"+kind, false, res)

	case metrics.KindDetailed:
		in := heatload.DefaultDetailedInput()
		if err := decodeStrict(payload, &in); err != nil {
			c.replyErr(kind, err)
			return
		}
		res, err := calcDetailed(in)
		if err != nil {
			c.metrics.Reject(kind)
			c.replyErr(kind, err)
			return
		}
		c.metrics.Observe(kind, res.Breakdown.Total)
		c.publishJSON("result/"+kind, false, heatload.NewDocument(in, res))

	default:
		c.log.Debug("unknown calc topic", "kind", kind)
	}
}

func calcDetailed(in heatload.DetailedInput) (heatload.DetailedResult, error) {
	if err := in.Validate(); err != nil {
		return heatload.DetailedResult{}, err
	}
	return heatload.Detailed(in)
}

func (c *Controller) replyErr(kind string, err error) {
	c.log.Warn("calc rejected", "kind", kind, "error", err)
	c.publishJSON("result/"+kind, false, errorDTO{Error: err.Error()})
}

func (c *Controller) topic(suffix string) string {
	return strings.TrimRight(c.cfg.BaseTopic, "/") + "/" + suffix
}

func decodeStrict(b []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func decodeValueStrict[T any](b []byte) (T, error) {
	var zero T
	var req valueReq[T]
	if err := decodeStrict(b, &req); err != nil {
		return zero, err
	}
	if req.Value == nil {
		return zero, errors.New("missing field 'value'")
	}
	return *req.Value, nil
}
