package device

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"yandexsmarthome/internal/capability"
	"yandexsmarthome/internal/config"
	"yandexsmarthome/internal/ha"
	"yandexsmarthome/internal/property"
	"yandexsmarthome/internal/protocol"
	"yandexsmarthome/internal/smarthome"
)

// Assembler builds devices from snapshots, configuration and the classifier
// registries. It is safe for concurrent use.
type Assembler struct {
	env          *smarthome.Env
	config       *config.Config
	capabilities *capability.Registry
	properties   *property.Registry
	logger       *zap.Logger

	conflictsMu sync.Mutex
	conflicts   map[string]struct{}
}

// NewAssembler creates an assembler using the built-in registries.
func NewAssembler(env *smarthome.Env, cfg *config.Config) *Assembler {
	return &Assembler{
		env:          env,
		config:       cfg,
		capabilities: capability.NewRegistry(),
		properties:   property.NewRegistry(),
		logger:       env.Logger,
		conflicts:    make(map[string]struct{}),
	}
}

// Device builds the device of one entity from its latest snapshot.
func (a *Assembler) Device(entityID string) (*Device, error) {
	var st *ha.State
	if a.env.States != nil {
		st, _ = a.env.States.Get(entityID)
	}
	if st == nil {
		return nil, smarthome.DeviceNotFound(entityID)
	}
	return a.Build(st), nil
}

// Build evaluates every classifier against st. Custom capabilities and
// properties come first and replace automatic ones of the same variant.
func (a *Assembler) Build(st *ha.State) *Device {
	cfg := a.config.Entity(st.EntityID)
	return &Device{
		ID:           st.EntityID,
		Capabilities: a.resolveCapabilities(st, cfg),
		Properties:   a.resolveProperties(st, cfg),
		state:        st,
		cfg:          cfg,
		logger:       a.logger,
	}
}

func (a *Assembler) resolveCapabilities(st *ha.State, cfg config.EntityConfig) []capability.Capability {
	var out []capability.Capability
	custom := map[capability.Variant]bool{}
	for _, c := range capability.Custom(a.env, st, cfg) {
		custom[capability.Key(c)] = true
		out = append(out, c)
	}

	seen := map[capability.Variant]bool{}
	for _, c := range a.capabilities.Classify(a.env, st, cfg) {
		key := capability.Key(c)
		if custom[key] {
			continue
		}
		if seen[key] {
			a.conflict(st.EntityID, string(key.Type), string(key.Instance))
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

func (a *Assembler) resolveProperties(st *ha.State, cfg config.EntityConfig) []property.Property {
	var out []property.Property
	custom := map[property.Variant]bool{}
	for _, pc := range cfg.Properties {
		p, err := property.NewCustom(a.env, st, pc)
		if err != nil {
			a.logger.Warn("Failed to set up custom property",
				zap.String("entity_id", st.EntityID),
				zap.String("instance", string(pc.Instance)),
				zap.Error(err))
			continue
		}
		key := property.Key(p)
		if custom[key] {
			a.conflict(st.EntityID, string(key.Type), string(key.Instance))
			continue
		}
		custom[key] = true
		out = append(out, p)
	}

	seen := map[property.Variant]bool{}
	for _, p := range a.properties.Classify(a.env, st) {
		key := property.Key(p)
		if custom[key] {
			continue
		}
		if seen[key] {
			a.conflict(st.EntityID, string(key.Type), string(key.Instance))
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

// conflict logs a variant claimed twice for an entity, once per process.
func (a *Assembler) conflict(entityID, typ, instance string) {
	key := entityID + "|" + typ + "|" + instance
	a.conflictsMu.Lock()
	_, logged := a.conflicts[key]
	a.conflicts[key] = struct{}{}
	a.conflictsMu.Unlock()
	if logged {
		return
	}
	a.logger.Warn("Instance claimed by more than one classifier, keeping the first",
		zap.String("entity_id", entityID),
		zap.String("type", typ),
		zap.String("instance", instance))
}

// Describe returns the discovery entries of the given entities. Unknown
// entities and entities without capabilities or properties are left out.
func (a *Assembler) Describe(entityIDs []string) []protocol.DeviceDescription {
	out := make([]protocol.DeviceDescription, 0, len(entityIDs))
	for _, id := range entityIDs {
		d, err := a.Device(id)
		if err != nil || !d.Supported() {
			continue
		}
		out = append(out, d.Description())
	}
	return out
}

// Query returns the state of each requested entity.
func (a *Assembler) Query(entityIDs []string) protocol.DeviceStates {
	out := protocol.DeviceStates{Devices: make([]protocol.DeviceState, 0, len(entityIDs))}
	for _, id := range entityIDs {
		d, err := a.Device(id)
		if err != nil {
			out.Devices = append(out.Devices, protocol.DeviceState{
				ID:           id,
				ErrorCode:    smarthome.CodeOf(err),
				ErrorMessage: err.Error(),
			})
			continue
		}
		out.Devices = append(out.Devices, d.Query())
	}
	return out
}

// Execute runs the actions of each requested device.
func (a *Assembler) Execute(ctx context.Context, devices []protocol.ActionRequestDevice) protocol.ActionResultDevices {
	out := protocol.ActionResultDevices{Devices: make([]protocol.ActionResultDevice, 0, len(devices))}
	for _, req := range devices {
		d, err := a.Device(req.ID)
		if err != nil {
			r := smarthome.ActionResultOf(err)
			out.Devices = append(out.Devices, protocol.ActionResultDevice{ID: req.ID, ActionResult: &r})
			continue
		}
		out.Devices = append(out.Devices, d.Execute(ctx, req.Capabilities))
	}
	return out
}
