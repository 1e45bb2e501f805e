package http

import (
	"encoding/json"

	"github.com/vovakirdan/gymsync-server/internal/core"
	"github.com/vovakirdan/gymsync-server/internal/proto"
)

// inboundToCommand validates the envelope and builds the core command.
// A *proto.Error return means the message was rejected; the connection
// stays up either way, so a malformed payload costs one dropped
// message, never the room membership.
func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error) {
	switch inbound.Type {
	case proto.InboundTypeJoinRoom:
		var join proto.JoinRoomData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, &proto.Error{Code: core.ErrCodeInvalidPayload, Msg: "malformed payload"}
		}
		if join.Room == "" || join.Identity == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "room and identity are required"}
		}
		return &core.Command{
			Kind:     core.CommandJoinRoom,
			Room:     join.Room,
			Identity: join.Identity,
			Name:     join.Name,
			Host:     join.Host,
		}, nil

	case proto.InboundTypeLeaveRoom:
		var leave proto.LeaveRoomData
		if err := json.Unmarshal(inbound.Data, &leave); err != nil {
			return nil, &proto.Error{Code: core.ErrCodeInvalidPayload, Msg: "malformed payload"}
		}
		if leave.Room == "" || leave.Identity == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "room and identity are required"}
		}
		return &core.Command{
			Kind:     core.CommandLeaveRoom,
			Room:     leave.Room,
			Identity: leave.Identity,
		}, nil

	case proto.InboundTypeStartSession:
		var start proto.StartSessionData
		if err := json.Unmarshal(inbound.Data, &start); err != nil {
			return nil, &proto.Error{Code: core.ErrCodeInvalidPayload, Msg: "malformed payload"}
		}
		if start.Room == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "room is required"}
		}
		if len(start.Routine) == 0 {
			return nil, &proto.Error{Code: core.ErrCodeInvalidPayload, Msg: "routine is required"}
		}
		return &core.Command{
			Kind:    core.CommandStartSession,
			Room:    start.Room,
			Routine: start.Routine,
		}, nil

	case proto.InboundTypeProgress:
		var prog proto.ProgressData
		if err := json.Unmarshal(inbound.Data, &prog); err != nil {
			return nil, &proto.Error{Code: core.ErrCodeInvalidPayload, Msg: "malformed payload"}
		}
		if prog.Room == "" || prog.Identity == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "room and identity are required"}
		}
		return &core.Command{
			Kind:     core.CommandProgress,
			Room:     prog.Room,
			Identity: prog.Identity,
			Value:    prog.Value,
			Payload:  prog.Payload,
		}, nil

	case proto.InboundTypeParticipants:
		var list proto.ParticipantsData
		if err := json.Unmarshal(inbound.Data, &list); err != nil {
			return nil, &proto.Error{Code: core.ErrCodeInvalidPayload, Msg: "malformed payload"}
		}
		if list.Room == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "room is required"}
		}
		return &core.Command{
			Kind: core.CommandListParticipants,
			Room: list.Room,
		}, nil

	case proto.InboundTypeOffer, proto.InboundTypeAnswer, proto.InboundTypeCandidate:
		var sig proto.SignalData
		if err := json.Unmarshal(inbound.Data, &sig); err != nil {
			return nil, &proto.Error{Code: core.ErrCodeInvalidPayload, Msg: "malformed payload"}
		}
		if sig.Room == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "room is required"}
		}
		if len(sig.Payload) == 0 {
			return nil, &proto.Error{Code: core.ErrCodeInvalidPayload, Msg: "payload is required"}
		}
		kind := core.CommandOffer
		switch inbound.Type {
		case proto.InboundTypeAnswer:
			kind = core.CommandAnswer
		case proto.InboundTypeCandidate:
			kind = core.CommandCandidate
		}
		return &core.Command{
			Kind:   kind,
			Room:   sig.Room,
			Signal: sig.Payload,
		}, nil

	case proto.InboundTypeOpenChat, proto.InboundTypeCloseChat:
		var chat proto.ChatData
		if err := json.Unmarshal(inbound.Data, &chat); err != nil {
			return nil, &proto.Error{Code: core.ErrCodeInvalidPayload, Msg: "malformed payload"}
		}
		if chat.Room == "" || chat.Identity == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "room and identity are required"}
		}
		kind := core.CommandOpenChat
		if inbound.Type == proto.InboundTypeCloseChat {
			kind = core.CommandCloseChat
		}
		return &core.Command{
			Kind:     kind,
			Room:     chat.Room,
			Identity: chat.Identity,
		}, nil

	default:
		return nil, &proto.Error{Code: "invalid_message", Msg: "unknown message type"}
	}
}

func participantInfos(participants []core.Participant) []proto.ParticipantInfo {
	infos := make([]proto.ParticipantInfo, 0, len(participants))
	for _, p := range participants {
		infos = append(infos, proto.ParticipantInfo{
			Identity: p.Identity,
			Name:     p.Name,
			Host:     p.Host,
		})
	}
	return infos
}

func publicInfos(views []core.PublicView) []proto.PublicParticipantInfo {
	infos := make([]proto.PublicParticipantInfo, 0, len(views))
	for _, v := range views {
		infos = append(infos, proto.PublicParticipantInfo{
			Identity: v.Identity,
			Name:     v.Name,
		})
	}
	return infos
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventJoined:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventNameJoined,
			Data: proto.EventJoined{
				Room:         event.Room,
				Identity:     event.Identity,
				Host:         event.Host,
				Participants: participantInfos(event.Participants),
			},
		}
	case core.EventRoomUpdate:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventNameRoomUpdate,
			Data: proto.EventRoomUpdate{
				Room:         event.Room,
				Participants: participantInfos(event.Participants),
			},
		}
	case core.EventParticipants:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventNameParticipants,
			Data: proto.EventParticipants{
				Room:         event.Room,
				Participants: publicInfos(event.Public),
			},
		}
	case core.EventSessionStarting:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventNameSessionStarting,
			Data: proto.EventSessionStarting{
				Room:    event.Room,
				Routine: event.Routine,
			},
		}
	case core.EventProgress:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventNameProgress,
			Data: proto.EventProgress{
				Room:     event.Room,
				Identity: event.Identity,
				Value:    event.Value,
				Payload:  event.Payload,
			},
		}
	case core.EventOffer, core.EventAnswer, core.EventCandidate:
		name := proto.EventNameOffer
		switch event.Kind {
		case core.EventAnswer:
			name = proto.EventNameAnswer
		case core.EventCandidate:
			name = proto.EventNameCandidate
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: name,
			Data: proto.EventSignal{
				Room:    event.Room,
				Payload: event.Signal,
			},
		}
	case core.EventChatOpened:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventNameChatOpened,
			Data: proto.EventChatOpened{
				Room:     event.Room,
				Identity: event.Identity,
			},
		}
	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}
