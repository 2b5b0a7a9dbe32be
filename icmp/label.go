package icmp

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/frozenpine/pia4go"
	piaerrors "github.com/frozenpine/pia4go/errors"
)

const unknownLabel = "unknown"

// labelTable maps indices 0..max to labels, indices inside the range
// without a label read as "unknown", indices above max are rejected.
type labelTable struct {
	max    uint8
	labels map[uint8]string
}

func (tbl *labelTable) lookup(idx uint8) (string, bool) {
	if idx > tbl.max {
		return "", false
	}

	if label, exist := tbl.labels[idx]; exist {
		return label, true
	}

	return unknownLabel, true
}

var (
	typeLabels = labelTable{
		max: uint8(TypeTimeExceeded),
		labels: map[uint8]string{
			uint8(TypeEchoReply):              "echo reply",
			uint8(TypeDestinationUnreachable): "destination unreachable",
			uint8(TypeRedirect):               "redirect",
			uint8(TypeEchoRequest):            "echo request",
			uint8(TypeTimeExceeded):           "time exceeded",
		},
	}

	unreachableLabels = labelTable{
		max: CodePrecedenceCutoff,
		labels: map[uint8]string{
			CodeNetUnreachable:          "net unreachable",
			CodeHostUnreachable:         "host unreachable",
			CodeProtocolUnreachable:     "protocol unreachable",
			CodePortUnreachable:         "port unreachable",
			CodeFragmentationNeeded:     "fragment needed and df was set",
			CodeSourceRouteFailed:       "source route failed",
			CodeNetUnknown:              "destination network unknown",
			CodeHostUnknown:             "destination host unknown",
			CodeSourceHostIsolated:      "source host isolated",
			CodeNetAdminProhibited:      "communication with destination network is administratively prohibited",
			CodeHostAdminProhibited:     "communication with destination host is administratively prohibited",
			CodeNetUnreachableForTOS:    "destination network unreachable for tos",
			CodeHostUnreachableForTOS:   "destination host unreachable for tos",
			CodeCommAdminProhibited:     "communication administratively prohibited",
			CodeHostPrecedenceViolation: "host precedence violation",
			CodePrecedenceCutoff:        "precedence cutoff in effect",
		},
	}

	redirectLabels = labelTable{
		max: CodeRedirectTOSHost,
		labels: map[uint8]string{
			CodeRedirectNet:     "redirect datagram for the network",
			CodeRedirectHost:    "redirect datagram for the host",
			CodeRedirectTOSNet:  "redirect datagram for the tos and network",
			CodeRedirectTOSHost: "redirect datagram for the tos and host",
		},
	}

	timeExceededLabels = labelTable{
		max: CodeFragmentReassemblyExceeded,
		labels: map[uint8]string{
			CodeTTLExceeded:                "time to live exceeded in transit",
			CodeFragmentReassemblyExceeded: "fragment reassembly time exceeded",
		},
	}
)

// TypeLabel human readable message type
func TypeLabel(m Message) (string, error) {
	if err := m.valid(); err != nil {
		return "", err
	}

	label, ok := typeLabels.lookup(uint8(m.Type()))
	if !ok {
		pia4go.Logger().WithField("type", m.Type()).Debug("icmp type out of label table")

		return "", errors.Wrapf(piaerrors.ErrUnknownType, "type %d", m.Type())
	}

	return label, nil
}

// CodeLabel human readable message code, echo messages have no code
// semantics and report ErrNotApplicable.
func CodeLabel(m Message) (string, error) {
	if err := m.valid(); err != nil {
		return "", err
	}

	if m.IsEcho() {
		return "", errors.Wrapf(piaerrors.ErrNotApplicable, "echo type %d", m.Type())
	}

	var tbl *labelTable

	switch Classify(m) {
	case ClassDestinationUnreachable:
		tbl = &unreachableLabels
	case ClassRedirect:
		tbl = &redirectLabels
	case ClassTimeExceeded:
		tbl = &timeExceededLabels
	default:
		return "", errors.Wrapf(
			piaerrors.ErrUnknownCode, "no code table for type %d", m.Type(),
		)
	}

	label, ok := tbl.lookup(m.Code())
	if !ok {
		pia4go.Logger().WithFields(logrus.Fields{
			"type": m.Type(),
			"code": m.Code(),
		}).Debug("icmp code out of label table")

		return "", errors.Wrapf(
			piaerrors.ErrUnknownCode, "type %d code %d", m.Type(), m.Code(),
		)
	}

	return label, nil
}
