package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nihalhub/paylite-relay/internal/models"
	"github.com/nihalhub/paylite-relay/internal/services"
)

func sampleEntry() models.LogEntry {
	return models.LogEntry{
		ID:          "entry-1",
		Timestamp:   1756500000000,
		Provider:    models.ProviderBkash,
		TrxID:       "ABCD1234",
		AmountPaisa: 50000,
		Status:      models.StatusSent,
	}
}

func TestKafkaLogSink_Append(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writer := services.NewMockKafkaWriter(ctrl)
	sink := services.NewKafkaLogSink(writer)

	entry := sampleEntry()
	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msgs ...kafka.Message) error {
			require.Len(t, msgs, 1)
			assert.Equal(t, []byte(entry.ID), msgs[0].Key)

			var got models.LogEntry
			require.NoError(t, json.Unmarshal(msgs[0].Value, &got))
			assert.Equal(t, entry, got)
			return nil
		})

	assert.NoError(t, sink.Append(context.Background(), entry))
}

func TestKafkaLogSink_Append_WriterError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writer := services.NewMockKafkaWriter(ctrl)
	sink := services.NewKafkaLogSink(writer)

	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("broker unavailable"))

	err := sink.Append(context.Background(), sampleEntry())
	assert.EqualError(t, err, "broker unavailable")
}

func TestKafkaLogSink_Append_NilWriter(t *testing.T) {
	sink := services.NewKafkaLogSink(nil)
	assert.NoError(t, sink.Append(context.Background(), sampleEntry()))
}

func TestMultiSink_Append(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	first := services.NewMockLogSink(ctrl)
	second := services.NewMockLogSink(ctrl)
	sink := services.NewMultiSink(first, second)

	entry := sampleEntry()

	// the first sink failing must not skip the second
	first.EXPECT().Append(gomock.Any(), entry).Return(errors.New("db down"))
	second.EXPECT().Append(gomock.Any(), entry).Return(nil)

	err := sink.Append(context.Background(), entry)
	assert.EqualError(t, err, "db down")
}
