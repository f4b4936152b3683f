package modbusctrl

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"

	mbserver "github.com/tbrandon/mbserver"

	"github.com/Agrid-Dev/heizlast/internal/heatload"
	"github.com/Agrid-Dev/heizlast/internal/logging"
	"github.com/Agrid-Dev/heizlast/internal/ports"
)

// Config for the Modbus controller.
type Config struct {
	DeviceID string
	Addr     string
	UnitID   byte // UnitID (Modbus slave/unit ID). Use an integer 1..247.
}

type Controller struct {
	svc ports.BuildingService
	cfg Config
	log *slog.Logger

	serv *mbserver.Server
}

func New(svc ports.BuildingService, cfg Config, log *slog.Logger) (*Controller, error) {
	if cfg.UnitID == 0 {
		return nil, errors.New("modbus: UnitID is required (non-zero)")
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:1502"
	}
	if log == nil {
		log = logging.NewNop()
	}
	return &Controller{svc: svc, cfg: cfg, log: log.With("controller", "modbus")}, nil
}

// Run starts the Modbus server and registers handlers that apply writes immediately and
// answer reads from the building snapshot. It blocks until ctx is canceled.
func (c *Controller) Run(ctx context.Context) error {
	serv := mbserver.NewServer()
	c.serv = serv

	// Register handlers before ListenTCP; mbserver reads the table from its goroutines.
	serv.RegisterFunctionHandler(3, c.readHolding)
	serv.RegisterFunctionHandler(4, c.readInput)
	serv.RegisterFunctionHandler(6, c.writeSingle)
	serv.RegisterFunctionHandler(16, c.writeMultiple)

	if err := serv.ListenTCP(c.cfg.Addr); err != nil {
		return fmt.Errorf("mbserver listen tcp %s: %w", c.cfg.Addr, err)
	}
	c.log.Info("modbus listening", "addr", c.cfg.Addr, "unit_id", c.cfg.UnitID)

	<-ctx.Done()
	serv.Close()
	return ctx.Err()
}

// Read Holding Registers (function 3): HR 0..12, the inputs.
func (c *Controller) readHolding(_ *mbserver.Server, frame mbserver.Framer) ([]byte, *mbserver.Exception) {
	start, qty, ex := readRange(frame.GetData(), holdingCount)
	if ex != &mbserver.Success {
		return []byte{}, ex
	}
	in := c.svc.Get().Input
	regs := make([]uint16, 0, qty)
	for addr := start; addr < start+qty; addr++ {
		regs = append(regs, holdingValue(in, addr))
	}
	return registerResponse(regs), &mbserver.Success
}

// Read Input Registers (function 4): IR 0..13, geometry and results.
func (c *Controller) readInput(_ *mbserver.Server, frame mbserver.Framer) ([]byte, *mbserver.Exception) {
	start, qty, ex := readRange(frame.GetData(), len(inputRegisters))
	if ex != &mbserver.Success {
		return []byte{}, ex
	}
	res := c.svc.Get().Result
	regs := make([]uint16, 0, qty)
	for _, r := range inputRegisters[start : start+qty] {
		regs = append(regs, encode(r.value(res), r.scale))
	}
	return registerResponse(regs), &mbserver.Success
}

// Write Single Register (function 6)
func (c *Controller) writeSingle(_ *mbserver.Server, frame mbserver.Framer) ([]byte, *mbserver.Exception) {
	data := frame.GetData()
	if len(data) < 4 {
		return []byte{}, &mbserver.IllegalDataValue
	}
	addr := int(binary.BigEndian.Uint16(data[0:2]))
	value := binary.BigEndian.Uint16(data[2:4])

	if ex := c.writeRegister(addr, value); ex != &mbserver.Success {
		return []byte{}, ex
	}

	resp := make([]byte, 4)
	copy(resp, data[0:4])
	return resp, &mbserver.Success
}

// Write Multiple Registers (function 16). The whole frame is applied to one
// candidate input and committed once; any rejected register leaves the
// building unchanged.
func (c *Controller) writeMultiple(_ *mbserver.Server, frame mbserver.Framer) ([]byte, *mbserver.Exception) {
	d := frame.GetData()
	if len(d) < 5 {
		return []byte{}, &mbserver.IllegalDataValue
	}
	start := binary.BigEndian.Uint16(d[0:2])
	quantity := binary.BigEndian.Uint16(d[2:4])
	byteCount := int(d[4])
	if byteCount != int(quantity)*2 || len(d) < 5+byteCount {
		return []byte{}, &mbserver.IllegalDataValue
	}
	if int(start)+int(quantity) > holdingCount {
		return []byte{}, &mbserver.IllegalDataAddress
	}
	err := c.svc.Update(func(in *heatload.DetailedInput) error {
		for i := range int(quantity) {
			addr := int(start) + i
			val := binary.BigEndian.Uint16(d[5+i*2 : 5+i*2+2])
			if err := applyRegister(in, addr, val); err != nil {
				return fmt.Errorf("register %d: %w", addr, err)
			}
		}
		return nil
	})
	if err != nil {
		c.log.Warn("register block rejected", "start", start, "quantity", quantity, "error", err)
		return []byte{}, &mbserver.IllegalDataValue
	}

	resp := make([]byte, 4)
	binary.BigEndian.PutUint16(resp[0:2], start)
	binary.BigEndian.PutUint16(resp[2:4], quantity)
	return resp, &mbserver.Success
}

func (c *Controller) writeRegister(addr int, value uint16) *mbserver.Exception {
	var err error
	switch {
	case addr == RidgeAxisRegister:
		err = c.svc.SetRidgeAxis(heatload.RidgeAxis(value))
	case addr >= 0 && addr < len(holdingRegisters):
		r := holdingRegisters[addr]
		err = c.svc.Set(r.field, decode(value, r.scale))
	default:
		return &mbserver.IllegalDataAddress
	}
	if err != nil {
		c.log.Warn("register write rejected", "register", addr, "raw", value, "error", err)
		return &mbserver.IllegalDataValue
	}
	return &mbserver.Success
}

func applyRegister(in *heatload.DetailedInput, addr int, value uint16) error {
	if addr == RidgeAxisRegister {
		axis := heatload.RidgeAxis(value)
		if !axis.Valid() {
			return fmt.Errorf("%w: %d", heatload.ErrInvalidRidgeAxis, value)
		}
		in.RidgeAxis = axis
		return nil
	}
	r := holdingRegisters[addr]
	return r.field.Apply(in, decode(value, r.scale))
}

func holdingValue(in heatload.DetailedInput, addr int) uint16 {
	if addr == RidgeAxisRegister {
		return uint16(in.RidgeAxis)
	}
	r := holdingRegisters[addr]
	return encode(r.field.Value(in), r.scale)
}

// readRange parses a read request and checks it against a register bank of size n.
func readRange(data []byte, n int) (start, qty int, ex *mbserver.Exception) {
	if len(data) < 4 {
		return 0, 0, &mbserver.IllegalDataValue
	}
	start = int(binary.BigEndian.Uint16(data[0:2]))
	qty = int(binary.BigEndian.Uint16(data[2:4]))
	if qty == 0 || qty > 125 {
		return 0, 0, &mbserver.IllegalDataValue
	}
	if start+qty > n {
		return 0, 0, &mbserver.IllegalDataAddress
	}
	return start, qty, &mbserver.Success
}

// registerResponse builds byte count + big-endian register bytes.
func registerResponse(regs []uint16) []byte {
	byteCount := len(regs) * 2
	resp := make([]byte, 1+byteCount)
	resp[0] = byte(byteCount)
	for i, r := range regs {
		binary.BigEndian.PutUint16(resp[1+i*2:1+i*2+2], r)
	}
	return resp
}
