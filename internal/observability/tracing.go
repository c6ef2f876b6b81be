package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName    = "github.com/danmuck/ergoshake"
	SpanHandshake = "ergoshake.handshake"
)

// SpanEnder finishes a span; a non-nil error marks it failed.
type SpanEnder func(err error)

// StartHandshakeSpan opens a client span on the global OpenTelemetry
// provider. With no provider installed the span is a no-op.
func StartHandshakeSpan(ctx context.Context, attempt, addr, agent, version string) (context.Context, trace.Span, SpanEnder) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, SpanHandshake,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("handshake.attempt", attempt),
			attribute.String("net.peer.addr", addr),
			attribute.String("handshake.agent", agent),
			attribute.String("handshake.version", version),
		),
	)
	return ctx, span, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}
}

// AnnotateReply attaches the peer's declared identity to span.
func AnnotateReply(span trace.Span, agent, version, peer string, replyBytes int) {
	span.SetAttributes(
		attribute.String("handshake.reply.agent", agent),
		attribute.String("handshake.reply.version", version),
		attribute.String("handshake.reply.peer", peer),
		attribute.Int("handshake.reply.bytes", replyBytes),
	)
}
