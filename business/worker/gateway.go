package worker

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/superfeelapi/goAvatar/foundation/emotion"
	"github.com/superfeelapi/goAvatar/foundation/state"
)

func (w *Worker) gatewayOperation() {
	w.logger.Infow("worker: gatewayOperation: G started")
	defer w.logger.Infow("worker: gatewayOperation: G completed")

	messageCh := make(chan GatewayMessage)

	go func(conn *websocket.Conn) {
		w.logger.Infow("worker: gatewayOperation: G started to listen for JSON")
		defer w.logger.Infow("worker: gatewayOperation: G completed to listen for JSON")

		for {
			var msg GatewayMessage
			if err := conn.ReadJSON(&msg); err != nil {
				w.Shutdown(fmt.Errorf("worker: gatewayOperation: G:json: conn.ReadJSON: %w", err))
				return
			}
			messageCh <- msg
		}
	}(w.gateway)

	w.logger.Infow("worker: gatewayOperation: G listening")
	for {
		select {
		case <-w.shut:
			w.logger.Infow("worker: gatewayOperation: received shut signal")
			return

		case msg := <-messageCh:
			if msg.SessionID == "" {
				w.logger.Errorw("worker: gatewayOperation: message without session id", "type", msg.Type)
				continue
			}

			switch msg.Type {
			case audioMessage:
				if msg.SampleRate != 0 && msg.SampleRate != w.config.SampleRate {
					w.logger.Errorw("worker: gatewayOperation: sample rate mismatch", "got", msg.SampleRate, "want", w.config.SampleRate)
					continue
				}

				samples, err := decodePCM16(msg.Audio)
				if err != nil {
					w.logger.Errorw("worker: gatewayOperation: decoding audio", "ERROR", err)
					continue
				}
				if len(samples) == 0 {
					continue
				}

				audioID := msg.AudioID
				if audioID == "" {
					audioID = uuid.New().String()
				}

				w.announceSession(msg.SessionID)

				payload := AudioPayload{
					SessionID: msg.SessionID,
					AudioID:   audioID,
					Samples:   samples,
				}

				if err := w.broker.Publish(audioTopic, payload); err != nil {
					w.Shutdown(fmt.Errorf("worker: gatewayOperation: broker.Publish: %w", err))
					return
				}

				if w.state.Get(state.Emotion) {
					if err := w.broker.Publish(acousticTopic, payload); err != nil {
						w.Shutdown(fmt.Errorf("worker: gatewayOperation: broker.Publish: %w", err))
						return
					}
				}

			case transcriptMessage:
				w.logger.Infow("worker: gatewayOperation:", "transcript", msg.Transcript, "isFinal", msg.IsFinal)
				if !msg.IsFinal || !w.state.Get(state.Emotion) {
					continue
				}

				w.announceSession(msg.SessionID)

				err := w.broker.Publish(transcriptTopic, TranscriptPayload{
					SessionID:  msg.SessionID,
					Transcript: msg.Transcript,
				})
				if err != nil {
					w.Shutdown(fmt.Errorf("worker: gatewayOperation: broker.Publish: %w", err))
					return
				}

			case contextMessage:
				if msg.Context == nil {
					w.logger.Errorw("worker: gatewayOperation: context message without context")
					continue
				}
				if !w.state.Get(state.Emotion) {
					continue
				}

				w.announceSession(msg.SessionID)

				err := w.broker.Publish(contextTopic, ContextPayload{
					SessionID: msg.SessionID,
					Context: emotion.ContextualFeatures{
						Topics:            msg.Context.Topics,
						History:           msg.Context.History,
						TimeOfDay:         msg.Context.TimeOfDay,
						InteractionLength: msg.Context.InteractionLength,
					},
				})
				if err != nil {
					w.Shutdown(fmt.Errorf("worker: gatewayOperation: broker.Publish: %w", err))
					return
				}

			case endMessage:
				w.sessions.Destroy(msg.SessionID)

				if w.state.Get(state.Emotion) {
					if err := w.broker.Publish(endTopic, msg.SessionID); err != nil {
						w.Shutdown(fmt.Errorf("worker: gatewayOperation: broker.Publish: %w", err))
						return
					}
				}

				w.logger.Infow("worker: gatewayOperation: session ended", "session", msg.SessionID)

			default:
				w.logger.Errorw("worker: gatewayOperation: unknown message type", "type", msg.Type)
			}
		}
	}
}

// announceSession opens the session on first sight and tells the animator
// operation about it.
func (w *Worker) announceSession(sessionID string) {
	if _, ok := w.sessions.Get(sessionID); ok {
		return
	}

	w.sessions.Open(sessionID)
	w.newSessionCh <- sessionID
	w.logger.Infow("worker: gatewayOperation: session opened", "session", sessionID)
}

// =================================================================================================================

func decodePCM16(encoded string) ([]float64, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}
	if len(raw)%2 != 0 {
		return nil, errors.New("pcm16 payload has odd byte length")
	}

	samples := make([]float64, len(raw)/2)
	for i := range samples {
		samples[i] = float64(int16(binary.LittleEndian.Uint16(raw[2*i:]))) / 32768
	}

	return samples, nil
}
