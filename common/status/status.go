package status

// Code is the integer status returned across the bridge boundary. The
// numbering is part of the C ABI contract and must not be reordered.
type Code int32

const (
	KOk                 Code = 0
	KNullHandle         Code = 1
	KWriterClosed       Code = 2
	KInvalidArgument    Code = 3
	KImportError        Code = 4
	KExternalWriteError Code = 5
	KInternalFault      Code = 7
)

type Status struct {
	code Code
	msg  string
}

func NewStatus(code Code, msg string) Status {
	return Status{
		code: code,
		msg:  msg,
	}
}

func (s *Status) Code() Code {
	return s.code
}

func (s *Status) Msg() string {
	return s.msg
}

func OK() Status {
	return Status{
		code: KOk,
	}
}

func NullHandle() Status {
	return Status{
		code: KNullHandle,
		msg:  "writer handle is nil",
	}
}

func WriterClosed() Status {
	return Status{
		code: KWriterClosed,
		msg:  "writer is already closed",
	}
}

func InvalidArgument(msg string) Status {
	return Status{
		code: KInvalidArgument,
		msg:  msg,
	}
}

func ImportError(msg string) Status {
	return Status{
		code: KImportError,
		msg:  msg,
	}
}

func ExternalWriteError(msg string) Status {
	return Status{
		code: KExternalWriteError,
		msg:  msg,
	}
}

func InternalFault(msg string) Status {
	return Status{
		code: KInternalFault,
		msg:  msg,
	}
}

func (s *Status) IsOK() bool {
	return s.code == KOk
}

func (s *Status) IsNullHandle() bool {
	return s.code == KNullHandle
}

func (s *Status) IsWriterClosed() bool {
	return s.code == KWriterClosed
}

func (s *Status) IsInvalidArgument() bool {
	return s.code == KInvalidArgument
}

func (s *Status) IsImportError() bool {
	return s.code == KImportError
}

func (s *Status) IsExternalWriteError() bool {
	return s.code == KExternalWriteError
}

func (s *Status) IsInternalFault() bool {
	return s.code == KInternalFault
}
