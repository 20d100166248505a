package capability

import (
	"context"

	"yandexsmarthome/internal/ha"
	"yandexsmarthome/internal/protocol"
)

// VideoStream is the video_stream capability of cameras.
type VideoStream struct {
	base
}

func bindVideoStream(b binding) (Capability, bool) {
	if b.state.Domain() != ha.DomainCamera || !b.state.Supports(ha.CameraSupportStream) {
		return nil, false
	}
	return &VideoStream{base: base{binding: b, instance: protocol.VideoStreamInstanceGetStream}}, true
}

func (c *VideoStream) Type() protocol.CapabilityType { return protocol.CapabilityTypeVideoStream }
func (c *VideoStream) Retrievable() bool             { return false }
func (c *VideoStream) Reportable() bool              { return false }

func (c *VideoStream) Parameters() protocol.CapabilityParameters {
	return protocol.VideoStreamCapabilityParameters{Protocols: []protocol.StreamProtocol{protocol.StreamProtocolHLS}}
}

func (c *VideoStream) Value() (any, error) { return nil, nil }

// SetValue starts a stream and returns its absolute URL.
func (c *VideoStream) SetValue(ctx context.Context, _ protocol.CapabilityActionState) (any, error) {
	url, err := c.env.StreamURL(ctx, c.entityID())
	if err != nil {
		return nil, err
	}
	return protocol.VideoStreamValue{StreamURL: url, Protocol: protocol.StreamProtocolHLS}, nil
}
