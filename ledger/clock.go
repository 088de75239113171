// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
)

// Clock is the clock sysvar, the only source of time for programs.
type Clock struct {
	Slot                uint64
	EpochStartTimestamp int64
	Epoch               uint64
	LeaderScheduleEpoch uint64
	UnixTimestamp       int64
}

// NewClock builds the clock of a slot.
func NewClock(slot uint64, unixTimestamp, epochStart int64) Clock {
	epoch := slot / SlotsPerEpoch
	return Clock{
		Slot:                slot,
		EpochStartTimestamp: epochStart,
		Epoch:               epoch,
		LeaderScheduleEpoch: epoch + 1,
		UnixTimestamp:       unixTimestamp,
	}
}

func (c *Clock) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteUint64(c.Slot, bin.LE); err != nil {
		return err
	}
	if err := encoder.WriteInt64(c.EpochStartTimestamp, bin.LE); err != nil {
		return err
	}
	if err := encoder.WriteUint64(c.Epoch, bin.LE); err != nil {
		return err
	}
	if err := encoder.WriteUint64(c.LeaderScheduleEpoch, bin.LE); err != nil {
		return err
	}
	return encoder.WriteInt64(c.UnixTimestamp, bin.LE)
}

func (c *Clock) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if c.Slot, err = decoder.ReadUint64(bin.LE); err != nil {
		return err
	}
	if c.EpochStartTimestamp, err = decoder.ReadInt64(bin.LE); err != nil {
		return err
	}
	if c.Epoch, err = decoder.ReadUint64(bin.LE); err != nil {
		return err
	}
	if c.LeaderScheduleEpoch, err = decoder.ReadUint64(bin.LE); err != nil {
		return err
	}
	c.UnixTimestamp, err = decoder.ReadInt64(bin.LE)
	return err
}

// Encode returns the sysvar account data.
func (c Clock) Encode() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := c.MarshalWithEncoder(bin.NewBinEncoder(buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeClock parses clock sysvar data.
func DecodeClock(data []byte) (Clock, error) {
	var c Clock
	err := c.UnmarshalWithDecoder(bin.NewBinDecoder(data))
	return c, err
}
