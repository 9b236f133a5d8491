package servicemanager

import (
	"fmt"
	"time"

	"helloworld/domain"
	"helloworld/errors"
	pb "helloworld/proto/servicemanager"

	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceInfo is a directory listing row.
type ServiceInfo struct {
	domain.Registration
	Declared bool
}

func toStruct(info ServiceInfo) *structpb.Struct {
	fields := map[string]*structpb.Value{
		pb.FieldName:     structpb.NewStringValue(info.Name),
		pb.FieldAddress:  structpb.NewStringValue(info.Address),
		pb.FieldPID:      structpb.NewNumberValue(float64(info.PID)),
		pb.FieldDeclared: structpb.NewBoolValue(info.Declared),
	}
	if !info.RegisteredAt.IsZero() {
		fields[pb.FieldRegisteredAt] = structpb.NewStringValue(info.RegisteredAt.UTC().Format(time.RFC3339Nano))
	}
	return &structpb.Struct{Fields: fields}
}

func fromStruct(s *structpb.Struct) (ServiceInfo, error) {
	fields := s.GetFields()
	info := ServiceInfo{
		Registration: domain.Registration{
			Name:    fields[pb.FieldName].GetStringValue(),
			Address: fields[pb.FieldAddress].GetStringValue(),
			PID:     int32(fields[pb.FieldPID].GetNumberValue()),
		},
		Declared: fields[pb.FieldDeclared].GetBoolValue(),
	}
	if raw := fields[pb.FieldRegisteredAt].GetStringValue(); raw != "" {
		at, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return ServiceInfo{}, fmt.Errorf("%w: registered_at %q", errors.ErrInvalidArgument, raw)
		}
		info.RegisteredAt = at
	}
	return info, nil
}
