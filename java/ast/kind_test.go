package ast

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindRegistryBijection(t *testing.T) {
	seen := make(map[string]Kind)
	for _, k := range Kinds() {
		name, err := KindName(k)
		require.NoError(t, err)
		require.NotEmpty(t, name)
		if prev, dup := seen[name]; dup {
			t.Fatalf("name %s registered for %d and %d", name, prev, k)
		}
		seen[name] = k

		back, err := KindByName(name)
		require.NoError(t, err)
		assert.Equal(t, k, back)
	}
	assert.Len(t, seen, int(kindCount)-1)
}

func TestJavadocKindRegistryBijection(t *testing.T) {
	for _, k := range JavadocKinds() {
		name, err := JavadocKindName(k)
		require.NoError(t, err)
		back, err := JavadocKindByName(name)
		require.NoError(t, err)
		assert.Equal(t, k, back)
	}
}

func TestKindLookups(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
	}{
		{"CLASS_DEF", ClassDef},
		{"METHOD_DEF", MethodDef},
		{"IDENT", Ident},
		{"OBJBLOCK", ObjBlock},
		{"SLIST", Slist},
		{"BLOCK_COMMENT_BEGIN", BlockCommentBegin},
		{"LITERAL_NON_SEALED", LiteralNonSealed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := KindByName(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, got)
			assert.Equal(t, tt.name, tt.kind.String())
		})
	}
}

func TestUnknownKind(t *testing.T) {
	_, err := KindName(Kind(0))
	assert.True(t, errors.Is(err, ErrUnknownKindID))

	_, err = KindName(Kind(100000))
	assert.True(t, errors.Is(err, ErrUnknownKindID))

	_, err = KindByName("NOT_A_TOKEN")
	assert.True(t, errors.Is(err, ErrUnknownKindName))
	var uk *UnknownKindError
	require.True(t, errors.As(err, &uk))
	assert.Equal(t, "NOT_A_TOKEN", uk.Name)

	_, err = JavadocKindName(JavadocKind(-3))
	assert.True(t, errors.Is(err, ErrUnknownKindID))

	_, err = JavadocKindByName("CLASS_DEF")
	assert.True(t, errors.Is(err, ErrUnknownKindName))

	assert.Equal(t, "Kind(0)", Kind(0).String())
}

func TestNamespacesAreSeparate(t *testing.T) {
	k, err := KindByName("EOF")
	require.NoError(t, err)
	jk, err := JavadocKindByName("EOF")
	require.NoError(t, err)
	assert.Equal(t, EOF, k)
	assert.Equal(t, JavadocEOF, jk)

	_, err = KindByName("JAVADOC_TAG")
	assert.Error(t, err)
}

func TestCommentKinds(t *testing.T) {
	for _, k := range []Kind{SingleLineComment, BlockCommentBegin, BlockCommentEnd, CommentContent} {
		assert.True(t, k.IsComment(), k.String())
	}
	assert.False(t, Ident.IsComment())

	ok, err := IsCommentKindName("SINGLE_LINE_COMMENT")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsCommentKindName("IDENT")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = IsCommentKindName("NOPE")
	assert.ErrorIs(t, err, ErrUnknownKindName)
}
