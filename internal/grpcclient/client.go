package grpcclient

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/example/corneal-ai/internal/logging"
	"github.com/example/corneal-ai/internal/scorer"
	proto "github.com/example/corneal-ai/proto"
)

// DefaultModelVersion is recorded when the inference service does not report
// its own version tag.
const DefaultModelVersion = "corneal_analysis_v1.0"

// DialScorer returns a ready-to-use gRPC client for the inference service.
func DialScorer(ctx context.Context, addr string, logger *zap.Logger) (scorer.Scorer, *grpc.ClientConn, error) {
	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	conn, err := grpc.DialContext(
		dialCtx,
		addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithBlock(),
	)
	if err != nil {
		wrapped := logging.NewOperationError("grpcclient.dial_scorer", "", err)
		logger.Error("failed to dial corneal scorer", zap.Error(wrapped), zap.String("addr", addr))
		return nil, nil, wrapped
	}
	client := proto.NewCornealScorerClient(conn)
	return &grpcScorer{client: client, logger: logger}, conn, nil
}

type grpcScorer struct {
	client proto.CornealScorerClient
	logger *zap.Logger
}

func (g *grpcScorer) Score(ctx context.Context, patientID string, imageBytes []byte) (*scorer.Result, error) {
	resp, err := g.client.ScoreImage(ctx, &proto.ScoreRequest{PatientId: patientID, ImageData: imageBytes})
	if err != nil {
		wrapped := logging.NewOperationError("grpcclient.score_image", patientID, err)
		g.logger.Error("scorer call failed", zap.Error(wrapped), zap.String("patient_id", patientID))
		return nil, wrapped
	}

	version := resp.GetModelVersion()
	if version == "" {
		version = DefaultModelVersion
	}
	return &scorer.Result{
		Probabilities: resp.GetProbabilities(),
		ModelVersion:  version,
	}, nil
}
