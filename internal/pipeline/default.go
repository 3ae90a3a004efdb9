package pipeline

import "encoding/json"

// DefaultDocument returns the reference evaluation document: a ResNet-vd 18
// backbone feeding a 256-wide structure head, TEDS-based table metric, and
// the standard four-step PubTabNet preprocessing sequence with synchronous
// single-sample loading.
func DefaultDocument() *Document {
	scale, _ := NewScaleLiteral("1./255.")

	return &Document{
		Architecture: Architecture{
			ImageModule: ImageModule{
				Name:         "ResNetVd",
				Layer:        18,
				HiddenLayers: 2,
				OutChannels:  128,
				ProjSize:     128,
				HasGate:      true,
			},
			TaskModule: TaskModule{
				InChannels: 128,
				HiddenSize: 256,
			},
		},
		Metric: []MetricSpec{
			{Name: "teds", Type: "TableMetric"},
		},
		Eval: Section{
			FeedNames: []string{"image", "structure", "bboxes"},
			Loader: Loader{
				CollectBatch:    true,
				NumWorkers:      0,
				Shuffle:         false,
				DropLast:        false,
				UseSharedMemory: false,
			},
			Dataset: Dataset{
				DataPath:  "./data/pubtabnet/val.jsonl",
				ImagePath: "./data/pubtabnet/val",
				BatchSize: 1,
				Shuffle:   false,
				Transform: []TransformStep{
					{
						Tag:    TagDecodeImage,
						Decode: &DecodeImageParams{ImgMode: ImgModeBGR, ChannelFirst: false},
					},
					{
						Tag:    TagResizeTableImage,
						Resize: &ResizeTableImageParams{MaxLen: 488},
					},
					{
						Tag: TagNormalizeImage,
						Normalize: &NormalizeImageParams{
							Scale: scale,
							Mean:  []float64{0.485, 0.456, 0.406},
							Std:   []float64{0.229, 0.224, 0.225},
							Order: OrderHWC,
						},
					},
					{
						Tag: TagToCHWImage,
					},
				},
			},
		},
	}
}

// MarshalCanonical serializes the document with canonical field ordering and
// two-space indentation. Parsing canonical output and re-serializing it
// yields byte-identical bytes.
func (d *Document) MarshalCanonical() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
