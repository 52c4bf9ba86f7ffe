package msh

import "go.uber.org/zap"

// session holds the scratch state of one parse. It is never shared between parses.
type session struct {
	data     []byte
	log      *zap.Logger
	textures textureSet
	issues   []Issue
}

func newSession(data []byte, log *zap.Logger) *session {
	if log == nil {
		log = zap.NewNop()
	}
	return &session{data: data, log: log}
}

func (s *session) report(kind IssueKind, model, detail string, fields ...zap.Field) {
	s.issues = append(s.issues, Issue{Kind: kind, Model: model, Detail: detail})
	fields = append([]zap.Field{zap.Stringer("kind", kind), zap.String("model", model)}, fields...)
	s.log.Warn(detail, fields...)
}
